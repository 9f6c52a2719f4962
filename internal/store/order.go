package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/The0mikkel/byceps/core/db/sqlc"
	"github.com/The0mikkel/byceps/internal/model"
)

type orderStore struct {
	queries *sqlc.Queries
}

func newOrderStore(queries *sqlc.Queries) OrderStore {
	return &orderStore{queries: queries}
}

func (s *orderStore) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	row, err := s.queries.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.load(ctx, row)
}

func (s *orderStore) GetForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	row, err := s.queries.GetOrderForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.load(ctx, row)
}

func (s *orderStore) UpdatePaymentState(ctx context.Context, update PaymentStateUpdate) (bool, error) {
	updatedBy := update.UpdatedBy
	affected, err := s.queries.UpdateOrderPaymentState(ctx, sqlc.UpdateOrderPaymentStateParams{
		NewState:           string(update.Next),
		UpdatedAt:          toTimestamptz(update.UpdatedAt),
		UpdatedByID:        &updatedBy,
		CancellationReason: update.CancellationReason,
		ID:                 update.OrderID,
		ExpectedState:      string(update.Expected),
	})
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (s *orderStore) SetProcessed(ctx context.Context, id int64, processed bool) error {
	return s.queries.UpdateOrderProcessed(ctx, sqlc.UpdateOrderProcessedParams{
		ID:        id,
		Processed: processed,
	})
}

func (s *orderStore) UpdateLineItemProcessingResult(ctx context.Context, lineItemID int64, result model.ProcessingResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding processing result: %w", err)
	}
	return s.queries.UpdateLineItemProcessingResult(ctx, sqlc.UpdateLineItemProcessingResultParams{
		ID:               lineItemID,
		ProcessingResult: raw,
	})
}

func (s *orderStore) ListOpenCreatedBefore(ctx context.Context, shopID string, before time.Time) ([]model.Order, error) {
	rows, err := s.queries.ListOpenOrdersCreatedBefore(ctx, sqlc.ListOpenOrdersCreatedBeforeParams{
		ShopID:    shopID,
		CreatedAt: toTimestamptz(before),
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		order := toOrderModel(row)
		result = append(result, *order)
	}
	return result, nil
}

func (s *orderStore) CountOpenCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	return s.queries.CountOpenOrdersCreatedBefore(ctx, toTimestamptz(before))
}

// load completes an order row with its line items and orderer.
func (s *orderStore) load(ctx context.Context, row sqlc.ShopOrder) (*model.Order, error) {
	order := toOrderModel(row)

	items, err := s.queries.ListLineItemsByOrder(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	order.LineItems = make([]model.LineItem, 0, len(items))
	for _, item := range items {
		lineItem, err := toLineItemModel(item)
		if err != nil {
			return nil, err
		}
		order.LineItems = append(order.LineItems, lineItem)
	}

	user, err := s.queries.GetUser(ctx, row.PlacedByID)
	if err == nil {
		order.PlacedBy.ScreenName = user.ScreenName
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading orderer: %w", err)
	}

	return order, nil
}

func toOrderModel(row sqlc.ShopOrder) *model.Order {
	return &model.Order{
		ID:                    row.ID,
		CreatedAt:             row.CreatedAt.Time,
		ShopID:                row.ShopID,
		OrderNumber:           row.OrderNumber,
		PlacedBy:              model.User{ID: row.PlacedByID},
		Currency:              row.Currency,
		TotalAmount:           toDecimal(row.TotalAmount),
		PaymentState:          model.PaymentState(row.PaymentState),
		PaymentStateUpdatedAt: toTimePointer(row.PaymentStateUpdatedAt),
		PaymentStateUpdatedBy: row.PaymentStateUpdatedByID,
		CancellationReason:    row.CancellationReason,
		ProcessingRequired:    row.ProcessingRequired,
		Processed:             row.Processed,
	}
}

func toLineItemModel(row sqlc.ShopOrderLineItem) (model.LineItem, error) {
	var result model.ProcessingResult
	if len(row.ProcessingResult) > 0 {
		if err := json.Unmarshal(row.ProcessingResult, &result); err != nil {
			return model.LineItem{}, fmt.Errorf("decoding processing result of line item %d: %w", row.ID, err)
		}
	}

	return model.LineItem{
		ID:                 row.ID,
		OrderID:            row.OrderID,
		OrderNumber:        row.OrderNumber,
		ArticleID:          row.ArticleID,
		ArticleNumber:      row.ArticleNumber,
		Description:        row.Description,
		UnitPrice:          toDecimal(row.UnitPrice),
		TaxRate:            toDecimal(row.TaxRate),
		Quantity:           int(row.Quantity),
		LinePrice:          toDecimal(row.LinePrice),
		ProcessingRequired: row.ProcessingRequired,
		ProcessingResult:   result,
	}, nil
}
