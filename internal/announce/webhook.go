package announce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/The0mikkel/byceps/internal/model"
)

// WebhookError reports a webhook endpoint answering with an unexpected status.
type WebhookError struct {
	Format     string
	StatusCode int
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("%s webhook API returned unexpected status code %d", e.Format, e.StatusCode)
}

// Caller delivers a text message to a single webhook.
type Caller interface {
	CallWebhook(ctx context.Context, webhook model.OutgoingWebhook, text string) error
}

type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(timeout time.Duration) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout})
}

func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     slog.Default().With("component", "byceps.announce.webhook"),
	}
}

// CallWebhook prefixes the text, posts the format's payload as JSON and
// checks the response status against the format's expectation.
func (c *Client) CallWebhook(ctx context.Context, webhook model.OutgoingWebhook, text string) error {
	if webhook.TextPrefix != nil && *webhook.TextPrefix != "" {
		text = *webhook.TextPrefix + text
	}

	format, err := FormatFor(ctx, c.logger, webhook)
	if err != nil {
		return err
	}

	body, err := json.Marshal(format.BuildPayload(text))
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", format.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s webhook: %w", format.Name(), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != format.ExpectedStatus() {
		return &WebhookError{Format: format.Name(), StatusCode: resp.StatusCode}
	}
	return nil
}
