package dto

import (
	"time"

	"github.com/The0mikkel/byceps/internal/model"
)

type WebhookRequest struct {
	EventSelectors map[string]model.EventSelector `json:"event_selectors" binding:"required"`
	ExtraFields    map[string]any                 `json:"extra_fields"`
	TextPrefix     *string                        `json:"text_prefix,omitempty" binding:"omitempty,max=255"`
	Description    *string                        `json:"description,omitempty" binding:"omitempty,max=1000"`
	Enabled        *bool                          `json:"enabled,omitempty"`
	Format         string                         `json:"format" binding:"required"`
	URL            string                         `json:"url" binding:"required,max=2048"`
}

// ToModel builds a webhook from the request. Webhooks are enabled unless the
// request says otherwise.
func (r WebhookRequest) ToModel(id int64) model.OutgoingWebhook {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return model.OutgoingWebhook{
		EventSelectors: r.EventSelectors,
		ExtraFields:    r.ExtraFields,
		TextPrefix:     r.TextPrefix,
		Description:    r.Description,
		Format:         model.WebhookFormat(r.Format),
		URL:            r.URL,
		ID:             id,
		Enabled:        enabled,
	}
}

type WebhookResponse struct {
	CreatedAt      time.Time                      `json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
	EventSelectors map[string]model.EventSelector `json:"event_selectors"`
	ExtraFields    map[string]any                 `json:"extra_fields"`
	TextPrefix     *string                        `json:"text_prefix,omitempty"`
	Description    *string                        `json:"description,omitempty"`
	Format         model.WebhookFormat            `json:"format"`
	URL            string                         `json:"url"`
	ID             int64                          `json:"id,string"`
	Enabled        bool                           `json:"enabled"`
}

func ToWebhookResponse(w *model.OutgoingWebhook) *WebhookResponse {
	return &WebhookResponse{
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
		EventSelectors: w.EventSelectors,
		ExtraFields:    w.ExtraFields,
		TextPrefix:     w.TextPrefix,
		Description:    w.Description,
		Format:         w.Format,
		URL:            w.URL,
		ID:             w.ID,
		Enabled:        w.Enabled,
	}
}

func ToWebhookResponses(webhooks []model.OutgoingWebhook) []WebhookResponse {
	out := make([]WebhookResponse, 0, len(webhooks))
	for i := range webhooks {
		out = append(out, *ToWebhookResponse(&webhooks[i]))
	}
	return out
}

type WebhookTestRequest struct {
	Text string `json:"text" binding:"max=2000"`
}
