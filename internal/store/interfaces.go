package store

import (
	"context"
	"errors"
	"time"

	"github.com/The0mikkel/byceps/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// OrderStore defines the contract for shop order data access
type OrderStore interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// GetForUpdate loads the order and locks its row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*model.Order, error)
	// UpdatePaymentState moves the order from expected to next. It reports false when the
	// stored state no longer is expected, leaving the row untouched.
	UpdatePaymentState(ctx context.Context, update PaymentStateUpdate) (bool, error)
	SetProcessed(ctx context.Context, id int64, processed bool) error
	UpdateLineItemProcessingResult(ctx context.Context, lineItemID int64, result model.ProcessingResult) error
	ListOpenCreatedBefore(ctx context.Context, shopID string, before time.Time) ([]model.Order, error)
	CountOpenCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}

type PaymentStateUpdate struct {
	UpdatedAt          time.Time
	CancellationReason *string
	Expected           model.PaymentState
	Next               model.PaymentState
	OrderID            int64
	UpdatedBy          int64
}

// OrderLogStore defines the contract for the append-only order log
type OrderLogStore interface {
	Append(ctx context.Context, entries ...model.OrderLogEntry) error
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLogEntry, error)
}

// PaymentStore defines the contract for payment data access
type PaymentStore interface {
	Create(ctx context.Context, payment model.Payment) error
	ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error)
}

// OrderActionStore defines the contract for order action registrations
type OrderActionStore interface {
	ListForArticles(ctx context.Context, articleIDs []int64, state model.PaymentState) ([]model.Action, error)
}

// TicketStore defines the contract for ticket and ticket bundle data access
type TicketStore interface {
	GetCategory(ctx context.Context, id int64) (*model.TicketCategory, error)
	CodeExists(ctx context.Context, partyID, code string) (bool, error)
	CreateTicket(ctx context.Context, ticket model.Ticket) (*model.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*model.Ticket, error)
	// RevokeTicket reports false if the ticket was already revoked.
	RevokeTicket(ctx context.Context, id int64) (bool, error)
	CreateBundle(ctx context.Context, bundle model.TicketBundle) (*model.TicketBundle, error)
	GetBundle(ctx context.Context, id int64) (*model.TicketBundle, error)
	// RevokeBundle revokes the bundle and its tickets. It reports false if the
	// bundle was already revoked.
	RevokeBundle(ctx context.Context, id int64) (bool, error)
}

// WebhookStore defines the contract for outgoing webhook configuration
type WebhookStore interface {
	Create(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error)
	GetByID(ctx context.Context, id int64) (*model.OutgoingWebhook, error)
	List(ctx context.Context) ([]model.OutgoingWebhook, error)
	// ListEnabledForEvent returns enabled webhooks whose selectors contain eventName as a key.
	ListEnabledForEvent(ctx context.Context, eventName string) ([]model.OutgoingWebhook, error)
	Update(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore defines the contract for user identity lookups
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
