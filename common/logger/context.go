package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and services enrich the context once; every log statement below them picks
// up the order, shop or webhook being worked on without repeating it.
type LogFields struct {
	OrderID   *int64  // Shop order ID
	ShopID    *string // Shop the order belongs to
	WebhookID *int64  // Outgoing webhook ID
	EventName *string // Registered domain event name (e.g., "shop-order-paid")
	MessageID *string // Redis stream message ID
	Component string  // Component name (e.g., "byceps.announce.announcer")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.OrderID != nil {
		result.OrderID = new.OrderID
	}
	if new.ShopID != nil {
		result.ShopID = new.ShopID
	}
	if new.WebhookID != nil {
		result.WebhookID = new.WebhookID
	}
	if new.EventName != nil {
		result.EventName = new.EventName
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{OrderID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
