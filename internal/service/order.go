package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/The0mikkel/byceps/common/logger"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/eventbus"
	"github.com/The0mikkel/byceps/internal/metrics"
	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/store"
)

var (
	// ErrConcurrentUpdate means the payment state changed between reading and writing the order.
	ErrConcurrentUpdate = errors.New("order was modified concurrently")
	ErrCurrencyMismatch = errors.New("payment currency does not match order currency")
	ErrInvalidAmount    = errors.New("payment amount must be positive")
)

type MarkAsPaidParams struct {
	AdditionalPaymentData map[string]any
	PaymentMethod         string
	OrderID               int64
	InitiatorID           int64
}

type CancelParams struct {
	Reason      string
	OrderID     int64
	InitiatorID int64
}

type AddPaymentParams struct {
	AdditionalData map[string]any
	Amount         decimal.Decimal
	Method         string
	// Currency is optional; when set it must match the order's currency.
	Currency    string
	OrderID     int64
	InitiatorID int64
}

type OrderService interface {
	Get(ctx context.Context, id int64) (*model.Order, error)
	ListLogEntries(ctx context.Context, id int64) ([]model.OrderLogEntry, error)
	ListPayments(ctx context.Context, id int64) ([]model.Payment, error)
	MarkAsPaid(ctx context.Context, params MarkAsPaidParams) (*model.Order, error)
	Cancel(ctx context.Context, params CancelParams) (*model.Order, error)
	AddPayment(ctx context.Context, params AddPaymentParams) (*model.Payment, error)
	AddNote(ctx context.Context, orderID, authorID int64, text string) (*model.OrderLogEntry, error)
	SetShippedFlag(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error)
	UnsetShippedFlag(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error)
	ListOverdue(ctx context.Context, shopID string) ([]model.Order, error)
}

type orderService struct {
	stores    StoreProvider
	txRunner  TxRunner
	publisher eventbus.Publisher
	actions   *actionRunner
	now       func() time.Time
	logger    *slog.Logger
}

// NewOrderService wires the order lifecycle to storage and the event bus.
// codes may be nil to use random ticket codes.
func NewOrderService(stores StoreProvider, txRunner TxRunner, publisher eventbus.Publisher, codes CodeSource) OrderService {
	return &orderService{
		stores:    stores,
		txRunner:  txRunner,
		publisher: publisher,
		actions:   newActionRunner(codes),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    slog.Default().With("component", "byceps.service.order"),
	}
}

func (s *orderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.stores.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return order, nil
}

func (s *orderService) ListLogEntries(ctx context.Context, id int64) ([]model.OrderLogEntry, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.stores.OrderLog().ListByOrder(ctx, id)
}

func (s *orderService) ListPayments(ctx context.Context, id int64) ([]model.Payment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.stores.Payments().ListByOrder(ctx, id)
}

func (s *orderService) MarkAsPaid(ctx context.Context, params MarkAsPaidParams) (*model.Order, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrderID: &params.OrderID})

	sc := logger.StartSpan(ctx, "order.mark_as_paid")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.Int64("order.id", params.OrderID))

	var (
		result *model.Order
		events []domain.Event
	)
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		order, initiator, err := s.lockOrder(ctx, stores, params.OrderID, params.InitiatorID)
		if err != nil {
			return err
		}

		occurredAt := s.now()
		event, entry, err := domain.MarkOrderAsPaid(
			*order, order.PlacedBy, occurredAt, params.PaymentMethod, params.AdditionalPaymentData, *initiator)
		if err != nil {
			return err
		}

		if err := s.transition(ctx, stores, order, model.PaymentStatePaid, occurredAt, initiator.ID, nil); err != nil {
			return err
		}
		if err := stores.OrderLog().Append(ctx, entry); err != nil {
			return fmt.Errorf("appending log entry: %w", err)
		}

		produced, err := s.actions.Run(ctx, stores, *order, model.PaymentStatePaid, *initiator)
		if err != nil {
			return err
		}

		events = append([]domain.Event{event}, produced...)
		result = order
		return nil
	})
	metrics.RecordOrderTransition(string(model.PaymentStatePaid), err)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "order marked as paid", "payment_method", params.PaymentMethod)

	if err := s.publish(ctx, events); err != nil {
		return result, err
	}
	return result, nil
}

func (s *orderService) Cancel(ctx context.Context, params CancelParams) (*model.Order, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrderID: &params.OrderID})

	sc := logger.StartSpan(ctx, "order.cancel")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.Int64("order.id", params.OrderID))

	var (
		result *model.Order
		events []domain.Event
		next   model.PaymentState
	)
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		order, initiator, err := s.lockOrder(ctx, stores, params.OrderID, params.InitiatorID)
		if err != nil {
			return err
		}

		occurredAt := s.now()
		event, entry, err := domain.CancelOrder(*order, order.PlacedBy, occurredAt, params.Reason, *initiator)
		if err != nil {
			return err
		}

		next = domain.CanceledPaymentState(*order)
		reason := params.Reason
		if err := s.transition(ctx, stores, order, next, occurredAt, initiator.ID, &reason); err != nil {
			return err
		}
		if err := stores.OrderLog().Append(ctx, entry); err != nil {
			return fmt.Errorf("appending log entry: %w", err)
		}

		produced, err := s.actions.Run(ctx, stores, *order, next, *initiator)
		if err != nil {
			return err
		}

		events = append([]domain.Event{event}, produced...)
		result = order
		return nil
	})
	metrics.RecordOrderTransition("canceled", err)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "order canceled", "payment_state", next)

	if err := s.publish(ctx, events); err != nil {
		return result, err
	}
	return result, nil
}

func (s *orderService) AddPayment(ctx context.Context, params AddPaymentParams) (*model.Payment, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var payment model.Payment
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		order, initiator, err := s.loadOrder(ctx, stores, params.OrderID, params.InitiatorID)
		if err != nil {
			return err
		}
		if params.Currency != "" && params.Currency != order.Currency {
			return ErrCurrencyMismatch
		}

		var entry model.OrderLogEntry
		payment, entry = domain.CreatePayment(*order, s.now(), params.Method, params.Amount, *initiator, params.AdditionalData)

		if err := stores.Payments().Create(ctx, payment); err != nil {
			return fmt.Errorf("creating payment: %w", err)
		}
		if err := stores.OrderLog().Append(ctx, entry); err != nil {
			return fmt.Errorf("appending log entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *orderService) AddNote(ctx context.Context, orderID, authorID int64, text string) (*model.OrderLogEntry, error) {
	var entry model.OrderLogEntry
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		order, author, err := s.loadOrder(ctx, stores, orderID, authorID)
		if err != nil {
			return err
		}
		entry = domain.AddNote(*order, *author, text)
		return stores.OrderLog().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *orderService) SetShippedFlag(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error) {
	return s.updateShippedFlag(ctx, orderID, initiatorID, true)
}

func (s *orderService) UnsetShippedFlag(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error) {
	return s.updateShippedFlag(ctx, orderID, initiatorID, false)
}

func (s *orderService) updateShippedFlag(ctx context.Context, orderID, initiatorID int64, shipped bool) (*model.OrderLogEntry, error) {
	var entry model.OrderLogEntry
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		order, initiator, err := s.loadOrder(ctx, stores, orderID, initiatorID)
		if err != nil {
			return err
		}

		if shipped {
			entry, err = domain.SetShippedFlag(*order, *initiator)
		} else {
			entry, err = domain.UnsetShippedFlag(*order, *initiator)
		}
		if err != nil {
			return err
		}

		if err := stores.Orders().SetProcessed(ctx, order.ID, shipped); err != nil {
			return fmt.Errorf("updating processed flag: %w", err)
		}
		return stores.OrderLog().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListOverdue returns the open orders of a shop whose payment is overdue, oldest first.
func (s *orderService) ListOverdue(ctx context.Context, shopID string) ([]model.Order, error) {
	now := s.now()
	orders, err := s.stores.Orders().ListOpenCreatedBefore(ctx, shopID, now.Add(-domain.OverdueThreshold))
	if err != nil {
		return nil, fmt.Errorf("listing open orders: %w", err)
	}

	overdue := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if domain.IsOverdueAt(order.CreatedAt, order.PaymentState, now) {
			overdue = append(overdue, order)
		}
	}
	return overdue, nil
}

func (s *orderService) lockOrder(ctx context.Context, stores StoreProvider, orderID, userID int64) (*model.Order, *model.User, error) {
	order, err := stores.Orders().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting order %d: %w", orderID, err)
	}
	user, err := stores.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting user %d: %w", userID, err)
	}
	return order, user, nil
}

func (s *orderService) loadOrder(ctx context.Context, stores StoreProvider, orderID, userID int64) (*model.Order, *model.User, error) {
	order, err := stores.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting order %d: %w", orderID, err)
	}
	user, err := stores.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting user %d: %w", userID, err)
	}
	return order, user, nil
}

// transition writes the new payment state guarded by the state the order was
// read with and updates order in place.
func (s *orderService) transition(
	ctx context.Context,
	stores StoreProvider,
	order *model.Order,
	next model.PaymentState,
	at time.Time,
	initiatorID int64,
	reason *string,
) error {
	ok, err := stores.Orders().UpdatePaymentState(ctx, store.PaymentStateUpdate{
		OrderID:            order.ID,
		Expected:           order.PaymentState,
		Next:               next,
		UpdatedAt:          at,
		UpdatedBy:          initiatorID,
		CancellationReason: reason,
	})
	if err != nil {
		return fmt.Errorf("updating payment state: %w", err)
	}
	if !ok {
		return ErrConcurrentUpdate
	}

	order.PaymentState = next
	order.PaymentStateUpdatedAt = &at
	order.PaymentStateUpdatedBy = &initiatorID
	if reason != nil {
		order.CancellationReason = reason
	}
	return nil
}

// publish runs after commit. Delivery failures are logged and counted but
// not returned, since the state change is already durable. Only an
// unregistered event type is returned, as that is a programming error.
func (s *orderService) publish(ctx context.Context, events []domain.Event) error {
	if s.publisher == nil || len(events) == 0 {
		return nil
	}
	err := s.publisher.Publish(ctx, events...)
	metrics.RecordEventPublish(err)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnregisteredEvent) {
		return fmt.Errorf("publishing order events: %w", err)
	}
	s.logger.ErrorContext(ctx, "publishing order events failed after commit",
		"error", err, "event_count", len(events))
	return nil
}
