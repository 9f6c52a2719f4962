package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/The0mikkel/byceps/core/db/sqlc"
	"github.com/The0mikkel/byceps/internal/model"
)

type webhookStore struct {
	queries *sqlc.Queries
}

func newWebhookStore(queries *sqlc.Queries) WebhookStore {
	return &webhookStore{queries: queries}
}

func (s *webhookStore) Create(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	selectors, extra, err := encodeWebhookJSON(webhook)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.CreateOutgoingWebhook(ctx, sqlc.CreateOutgoingWebhookParams{
		ID:             webhook.ID,
		EventSelectors: selectors,
		Format:         string(webhook.Format),
		TextPrefix:     webhook.TextPrefix,
		ExtraFields:    extra,
		Url:            webhook.URL,
		Description:    webhook.Description,
		Enabled:        webhook.Enabled,
	})
	if err != nil {
		return nil, err
	}
	return toWebhookModel(row)
}

func (s *webhookStore) GetByID(ctx context.Context, id int64) (*model.OutgoingWebhook, error) {
	row, err := s.queries.GetOutgoingWebhook(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWebhookModel(row)
}

func (s *webhookStore) List(ctx context.Context) ([]model.OutgoingWebhook, error) {
	rows, err := s.queries.ListOutgoingWebhooks(ctx)
	if err != nil {
		return nil, err
	}
	return toWebhookModels(rows)
}

func (s *webhookStore) ListEnabledForEvent(ctx context.Context, eventName string) ([]model.OutgoingWebhook, error) {
	rows, err := s.queries.ListEnabledOutgoingWebhooksForEvent(ctx, eventName)
	if err != nil {
		return nil, err
	}
	return toWebhookModels(rows)
}

func (s *webhookStore) Update(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	selectors, extra, err := encodeWebhookJSON(webhook)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.UpdateOutgoingWebhook(ctx, sqlc.UpdateOutgoingWebhookParams{
		ID:             webhook.ID,
		EventSelectors: selectors,
		Format:         string(webhook.Format),
		TextPrefix:     webhook.TextPrefix,
		ExtraFields:    extra,
		Url:            webhook.URL,
		Description:    webhook.Description,
		Enabled:        webhook.Enabled,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWebhookModel(row)
}

func (s *webhookStore) Delete(ctx context.Context, id int64) error {
	affected, err := s.queries.DeleteOutgoingWebhook(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeWebhookJSON(webhook model.OutgoingWebhook) ([]byte, []byte, error) {
	selectors := webhook.EventSelectors
	if selectors == nil {
		selectors = map[string]model.EventSelector{}
	}
	rawSelectors, err := json.Marshal(selectors)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding event selectors: %w", err)
	}

	extra := webhook.ExtraFields
	if extra == nil {
		extra = map[string]any{}
	}
	rawExtra, err := json.Marshal(extra)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding extra fields: %w", err)
	}

	return rawSelectors, rawExtra, nil
}

func toWebhookModels(rows []sqlc.OutgoingWebhook) ([]model.OutgoingWebhook, error) {
	result := make([]model.OutgoingWebhook, 0, len(rows))
	for _, row := range rows {
		webhook, err := toWebhookModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *webhook)
	}
	return result, nil
}

func toWebhookModel(row sqlc.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	selectors := map[string]model.EventSelector{}
	if len(row.EventSelectors) > 0 {
		if err := json.Unmarshal(row.EventSelectors, &selectors); err != nil {
			return nil, fmt.Errorf("decoding event selectors of webhook %d: %w", row.ID, err)
		}
	}

	extra, err := decodeJSONMap(row.ExtraFields)
	if err != nil {
		return nil, fmt.Errorf("decoding extra fields of webhook %d: %w", row.ID, err)
	}

	return &model.OutgoingWebhook{
		ID:             row.ID,
		EventSelectors: selectors,
		Format:         model.WebhookFormat(row.Format),
		TextPrefix:     row.TextPrefix,
		ExtraFields:    extra,
		URL:            row.Url,
		Description:    row.Description,
		Enabled:        row.Enabled,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}
