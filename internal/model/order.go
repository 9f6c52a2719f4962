package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentState string

const (
	PaymentStateOpen               PaymentState = "open"
	PaymentStatePaid               PaymentState = "paid"
	PaymentStateCanceledBeforePaid PaymentState = "canceled_before_paid"
	PaymentStateCanceledAfterPaid  PaymentState = "canceled_after_paid"
)

func (s PaymentState) Valid() bool {
	switch s {
	case PaymentStateOpen, PaymentStatePaid, PaymentStateCanceledBeforePaid, PaymentStateCanceledAfterPaid:
		return true
	}
	return false
}

func (s PaymentState) IsCanceled() bool {
	return s == PaymentStateCanceledBeforePaid || s == PaymentStateCanceledAfterPaid
}

type Order struct {
	CreatedAt             time.Time       `json:"created_at"`
	PaymentStateUpdatedAt *time.Time      `json:"payment_state_updated_at,omitempty"`
	PaymentStateUpdatedBy *int64          `json:"payment_state_updated_by_id,omitempty"`
	CancellationReason    *string         `json:"cancellation_reason,omitempty"`
	PlacedBy              User            `json:"placed_by"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	ShopID                string          `json:"shop_id"`
	OrderNumber           string          `json:"order_number"`
	Currency              string          `json:"currency"`
	PaymentState          PaymentState    `json:"payment_state"`
	LineItems             []LineItem      `json:"line_items"`
	ID                    int64           `json:"id"`
	ProcessingRequired    bool            `json:"processing_required"`
	Processed             bool            `json:"processed"`
}

func (o Order) IsOpen() bool {
	return o.PaymentState == PaymentStateOpen
}

func (o Order) IsPaid() bool {
	return o.PaymentState == PaymentStatePaid
}

func (o Order) IsCanceled() bool {
	return o.PaymentState.IsCanceled()
}

// ProcessingResult records what order actions produced for a line item so
// that later actions (revocation) can look it up instead of re-deriving it.
type ProcessingResult struct {
	TicketIDs       []int64 `json:"ticket_ids,omitempty"`
	TicketBundleIDs []int64 `json:"ticket_bundle_ids,omitempty"`
}

func (r ProcessingResult) IsEmpty() bool {
	return len(r.TicketIDs) == 0 && len(r.TicketBundleIDs) == 0
}

type LineItem struct {
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	TaxRate            decimal.Decimal  `json:"tax_rate"`
	LinePrice          decimal.Decimal  `json:"line_price"`
	ProcessingResult   ProcessingResult `json:"processing_result"`
	OrderNumber        string           `json:"order_number"`
	ArticleNumber      string           `json:"article_number"`
	Description        string           `json:"description"`
	ID                 int64            `json:"id"`
	OrderID            int64            `json:"order_id"`
	ArticleID          int64            `json:"article_id"`
	Quantity           int              `json:"quantity"`
	ProcessingRequired bool             `json:"processing_required"`
}

// CalculateLinePrice returns unit price times quantity.
func CalculateLinePrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderLogEntry is an append-only audit record of something that happened to an order.
type OrderLogEntry struct {
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
	EventType  string         `json:"event_type"`
	ID         int64          `json:"id"`
	OrderID    int64          `json:"order_id"`
}

type Payment struct {
	CreatedAt      time.Time       `json:"created_at"`
	AdditionalData map[string]any  `json:"additional_data"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Currency       string          `json:"currency"`
	ID             int64           `json:"id"`
	OrderID        int64           `json:"order_id"`
}
