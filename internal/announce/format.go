package announce

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/The0mikkel/byceps/internal/model"
)

// Format builds the request body for one webhook flavor and knows which
// status code the receiving side answers with on success.
type Format interface {
	Name() string
	BuildPayload(text string) any
	ExpectedStatus() int
}

type Discord struct{}

type discordPayload struct {
	Content string `json:"content"`
}

func (Discord) Name() string { return "Discord" }

func (Discord) BuildPayload(text string) any {
	return discordPayload{Content: text}
}

func (Discord) ExpectedStatus() int { return http.StatusNoContent }

// Weitersager is an IRC relay that posts to a single channel.
type Weitersager struct {
	Channel *string
}

type weitersagerPayload struct {
	Channel *string `json:"channel"`
	Text    string  `json:"text"`
}

func (Weitersager) Name() string { return "Weitersager" }

func (f Weitersager) BuildPayload(text string) any {
	return weitersagerPayload{Channel: f.Channel, Text: text}
}

func (Weitersager) ExpectedStatus() int { return http.StatusAccepted }

type Matrix struct {
	Key    *string
	RoomID *string
}

type matrixPayload struct {
	Key    *string `json:"key"`
	RoomID *string `json:"room_id"`
	Text   string  `json:"text"`
}

func (Matrix) Name() string { return "Matrix" }

func (f Matrix) BuildPayload(text string) any {
	return matrixPayload{Key: f.Key, RoomID: f.RoomID, Text: text}
}

func (Matrix) ExpectedStatus() int { return http.StatusOK }

// FormatFor picks the format of a webhook and reads its extra fields.
// Missing extra fields are logged and sent as null.
func FormatFor(ctx context.Context, logger *slog.Logger, webhook model.OutgoingWebhook) (Format, error) {
	switch webhook.Format {
	case model.WebhookFormatDiscord:
		return Discord{}, nil
	case model.WebhookFormatWeitersager:
		channel := extraField(webhook, "channel")
		if channel == nil {
			logger.WarnContext(ctx, "no channel specified with IRC webhook", "webhook_id", webhook.ID)
		}
		return Weitersager{Channel: channel}, nil
	case model.WebhookFormatMatrix:
		key := extraField(webhook, "key")
		if key == nil {
			logger.WarnContext(ctx, "no API key specified with Matrix webhook", "webhook_id", webhook.ID)
		}
		roomID := extraField(webhook, "room_id")
		if roomID == nil {
			logger.WarnContext(ctx, "no room ID specified with Matrix webhook", "webhook_id", webhook.ID)
		}
		return Matrix{Key: key, RoomID: roomID}, nil
	default:
		return nil, fmt.Errorf("unsupported webhook format %q", webhook.Format)
	}
}

func extraField(webhook model.OutgoingWebhook, key string) *string {
	v, ok := webhook.ExtraString(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
