package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/The0mikkel/byceps/common/id"
	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/store"
)

var ErrInvalidWebhook = errors.New("invalid webhook")

// WebhookTestResult reports the outcome of a test delivery.
type WebhookTestResult struct {
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Delivered  bool   `json:"delivered"`
}

type WebhookService interface {
	Create(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error)
	Get(ctx context.Context, id int64) (*model.OutgoingWebhook, error)
	List(ctx context.Context) ([]model.OutgoingWebhook, error)
	Update(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error)
	Delete(ctx context.Context, id int64) error
	SendTest(ctx context.Context, id int64, text string) (*WebhookTestResult, error)
}

type webhookService struct {
	webhooks store.WebhookStore
	caller   announce.Caller
}

func NewWebhookService(webhooks store.WebhookStore, caller announce.Caller) WebhookService {
	return &webhookService{
		webhooks: webhooks,
		caller:   caller,
	}
}

func (s *webhookService) Create(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	if err := validateWebhook(webhook); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	webhook.ID = id.New()
	webhook.CreatedAt = now
	webhook.UpdatedAt = now

	created, err := s.webhooks.Create(ctx, webhook)
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	slog.InfoContext(ctx, "outgoing webhook created",
		"webhook_id", created.ID,
		"format", created.Format,
		"events", len(created.EventSelectors))

	return created, nil
}

func (s *webhookService) Get(ctx context.Context, id int64) (*model.OutgoingWebhook, error) {
	return s.webhooks.GetByID(ctx, id)
}

func (s *webhookService) List(ctx context.Context) ([]model.OutgoingWebhook, error) {
	return s.webhooks.List(ctx)
}

func (s *webhookService) Update(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	if err := validateWebhook(webhook); err != nil {
		return nil, err
	}

	existing, err := s.webhooks.GetByID(ctx, webhook.ID)
	if err != nil {
		return nil, err
	}
	webhook.CreatedAt = existing.CreatedAt
	webhook.UpdatedAt = time.Now().UTC()

	updated, err := s.webhooks.Update(ctx, webhook)
	if err != nil {
		return nil, fmt.Errorf("updating webhook: %w", err)
	}
	return updated, nil
}

func (s *webhookService) Delete(ctx context.Context, id int64) error {
	return s.webhooks.Delete(ctx, id)
}

// SendTest calls the webhook directly, ignoring its selectors and enabled flag.
func (s *webhookService) SendTest(ctx context.Context, id int64, text string) (*WebhookTestResult, error) {
	webhook, err := s.webhooks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = "Test announcement"
	}

	err = s.caller.CallWebhook(ctx, *webhook, text)
	if err == nil {
		return &WebhookTestResult{Delivered: true}, nil
	}

	result := &WebhookTestResult{Error: err.Error()}
	var webhookErr *announce.WebhookError
	if errors.As(err, &webhookErr) {
		result.StatusCode = webhookErr.StatusCode
	}

	slog.WarnContext(ctx, "webhook test delivery failed", "webhook_id", id, "error", err)
	return result, nil
}

func validateWebhook(webhook model.OutgoingWebhook) error {
	if webhook.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidWebhook)
	}
	u, err := url.Parse(webhook.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be an absolute http(s) URL", ErrInvalidWebhook)
	}
	if !webhook.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidWebhook, webhook.Format)
	}
	for name := range webhook.EventSelectors {
		if !domain.IsRegisteredName(name) {
			return fmt.Errorf("%w: unknown event %q", ErrInvalidWebhook, name)
		}
	}
	return nil
}
