package store

import (
	"context"
	"fmt"

	"github.com/The0mikkel/byceps/core/db/sqlc"
	"github.com/The0mikkel/byceps/internal/model"
)

type orderLogStore struct {
	queries *sqlc.Queries
}

func newOrderLogStore(queries *sqlc.Queries) OrderLogStore {
	return &orderLogStore{queries: queries}
}

// Append writes entries in the given order.
func (s *orderLogStore) Append(ctx context.Context, entries ...model.OrderLogEntry) error {
	for _, entry := range entries {
		data, err := encodeJSON(entry.Data)
		if err != nil {
			return fmt.Errorf("encoding log entry data: %w", err)
		}
		if err := s.queries.CreateOrderLogEntry(ctx, sqlc.CreateOrderLogEntryParams{
			ID:         entry.ID,
			OccurredAt: toTimestamptz(entry.OccurredAt),
			EventType:  entry.EventType,
			OrderID:    entry.OrderID,
			Data:       data,
		}); err != nil {
			return fmt.Errorf("appending %s log entry: %w", entry.EventType, err)
		}
	}
	return nil
}

func (s *orderLogStore) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLogEntry, error) {
	rows, err := s.queries.ListOrderLogEntries(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]model.OrderLogEntry, 0, len(rows))
	for _, row := range rows {
		data, err := decodeJSONMap(row.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding log entry %d: %w", row.ID, err)
		}
		result = append(result, model.OrderLogEntry{
			ID:         row.ID,
			OccurredAt: row.OccurredAt.Time,
			EventType:  row.EventType,
			OrderID:    row.OrderID,
			Data:       data,
		})
	}
	return result, nil
}

type paymentStore struct {
	queries *sqlc.Queries
}

func newPaymentStore(queries *sqlc.Queries) PaymentStore {
	return &paymentStore{queries: queries}
}

func (s *paymentStore) Create(ctx context.Context, payment model.Payment) error {
	additional, err := encodeJSON(payment.AdditionalData)
	if err != nil {
		return fmt.Errorf("encoding additional payment data: %w", err)
	}
	return s.queries.CreatePayment(ctx, sqlc.CreatePaymentParams{
		ID:             payment.ID,
		OrderID:        payment.OrderID,
		CreatedAt:      toTimestamptz(payment.CreatedAt),
		Method:         payment.Method,
		Amount:         toNumeric(payment.Amount),
		Currency:       payment.Currency,
		AdditionalData: additional,
	})
}

func (s *paymentStore) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	rows, err := s.queries.ListPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]model.Payment, 0, len(rows))
	for _, row := range rows {
		additional, err := decodeJSONMap(row.AdditionalData)
		if err != nil {
			return nil, fmt.Errorf("decoding payment %d: %w", row.ID, err)
		}
		result = append(result, model.Payment{
			ID:             row.ID,
			OrderID:        row.OrderID,
			CreatedAt:      row.CreatedAt.Time,
			Method:         row.Method,
			Amount:         toDecimal(row.Amount),
			Currency:       row.Currency,
			AdditionalData: additional,
		})
	}
	return result, nil
}

type orderActionStore struct {
	queries *sqlc.Queries
}

func newOrderActionStore(queries *sqlc.Queries) OrderActionStore {
	return &orderActionStore{queries: queries}
}

func (s *orderActionStore) ListForArticles(ctx context.Context, articleIDs []int64, state model.PaymentState) ([]model.Action, error) {
	if len(articleIDs) == 0 {
		return []model.Action{}, nil
	}

	rows, err := s.queries.ListActionsForArticles(ctx, sqlc.ListActionsForArticlesParams{
		ArticleIds:   articleIDs,
		PaymentState: string(state),
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.Action, 0, len(rows))
	for _, row := range rows {
		procedure := model.Procedure(row.Procedure)
		params, err := model.DecodeActionParameters(procedure, row.Parameters)
		if err != nil {
			return nil, fmt.Errorf("order action %d: %w", row.ID, err)
		}
		result = append(result, model.Action{
			ID:           row.ID,
			ArticleID:    row.ArticleID,
			PaymentState: model.PaymentState(row.PaymentState),
			Procedure:    procedure,
			Parameters:   params,
		})
	}
	return result, nil
}
