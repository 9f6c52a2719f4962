package model

import "time"

type WebhookFormat string

const (
	WebhookFormatDiscord     WebhookFormat = "discord"
	WebhookFormatWeitersager WebhookFormat = "weitersager"
	WebhookFormatMatrix      WebhookFormat = "matrix"
)

func (f WebhookFormat) Valid() bool {
	switch f {
	case WebhookFormatDiscord, WebhookFormatWeitersager, WebhookFormatMatrix:
		return true
	}
	return false
}

// EventSelector maps an event attribute (e.g. "board_id") to the values a
// webhook wants announced. A nil selector matches every value of every attribute.
type EventSelector map[string][]string

// Allows reports whether value passes the rule configured for attribute.
// Attributes without a rule pass.
func (s EventSelector) Allows(attribute, value string) bool {
	allowed, ok := s[attribute]
	if !ok || allowed == nil {
		return true
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

type OutgoingWebhook struct {
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	EventSelectors map[string]EventSelector `json:"event_selectors"`
	ExtraFields    map[string]any           `json:"extra_fields"`
	TextPrefix     *string                  `json:"text_prefix,omitempty"`
	Description    *string                  `json:"description,omitempty"`
	Format         WebhookFormat            `json:"format"`
	URL            string                   `json:"url"`
	ID             int64                    `json:"id"`
	Enabled        bool                     `json:"enabled"`
}

// ExtraString returns a string extra field and whether it was set.
func (w OutgoingWebhook) ExtraString(key string) (string, bool) {
	v, ok := w.ExtraFields[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Channel returns the "channel" extra field, empty when absent.
func (w OutgoingWebhook) Channel() string {
	s, _ := w.ExtraString("channel")
	return s
}

// SelectsEvent reports whether the webhook is registered for eventName at all.
func (w OutgoingWebhook) SelectsEvent(eventName string) bool {
	_, ok := w.EventSelectors[eventName]
	return ok
}
