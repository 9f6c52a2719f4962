package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/model"
)

type MarkAsPaidRequest struct {
	AdditionalPaymentData map[string]any `json:"additional_payment_data"`
	PaymentMethod         string         `json:"payment_method" binding:"required,max=100"`
	InitiatorID           int64          `json:"initiator_id,string" binding:"required"`
}

type CancelOrderRequest struct {
	Reason      string `json:"reason" binding:"required,max=1000"`
	InitiatorID int64  `json:"initiator_id,string" binding:"required"`
}

type AddPaymentRequest struct {
	AdditionalData map[string]any  `json:"additional_data"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method" binding:"required,max=100"`
	Currency       string          `json:"currency" binding:"omitempty,len=3"`
	InitiatorID    int64           `json:"initiator_id,string" binding:"required"`
}

type AddNoteRequest struct {
	Text     string `json:"text" binding:"required,max=4000"`
	AuthorID int64  `json:"author_id,string" binding:"required"`
}

type ShippedFlagRequest struct {
	InitiatorID int64 `json:"initiator_id,string" binding:"required"`
}

type UserResponse struct {
	ScreenName *string `json:"screen_name,omitempty"`
	ID         int64   `json:"id,string"`
}

type LineItemResponse struct {
	ProcessingResult   model.ProcessingResult `json:"processing_result"`
	UnitPrice          decimal.Decimal        `json:"unit_price"`
	TaxRate            decimal.Decimal        `json:"tax_rate"`
	LinePrice          decimal.Decimal        `json:"line_price"`
	ArticleNumber      string                 `json:"article_number"`
	Description        string                 `json:"description"`
	ID                 int64                  `json:"id,string"`
	ArticleID          int64                  `json:"article_id,string"`
	Quantity           int                    `json:"quantity"`
	ProcessingRequired bool                   `json:"processing_required"`
}

type OrderResponse struct {
	CreatedAt             time.Time          `json:"created_at"`
	PaymentStateUpdatedAt *time.Time         `json:"payment_state_updated_at,omitempty"`
	CancellationReason    *string            `json:"cancellation_reason,omitempty"`
	PlacedBy              UserResponse       `json:"placed_by"`
	TotalAmount           decimal.Decimal    `json:"total_amount"`
	ShopID                string             `json:"shop_id"`
	OrderNumber           string             `json:"order_number"`
	Currency              string             `json:"currency"`
	PaymentState          model.PaymentState `json:"payment_state"`
	LineItems             []LineItemResponse `json:"line_items"`
	ID                    int64              `json:"id,string"`
	ProcessingRequired    bool               `json:"processing_required"`
	Processed             bool               `json:"processed"`
	Overdue               bool               `json:"overdue"`
}

func ToOrderResponse(o *model.Order) *OrderResponse {
	items := make([]LineItemResponse, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, LineItemResponse{
			ProcessingResult:   li.ProcessingResult,
			UnitPrice:          li.UnitPrice,
			TaxRate:            li.TaxRate,
			LinePrice:          li.LinePrice,
			ArticleNumber:      li.ArticleNumber,
			Description:        li.Description,
			ID:                 li.ID,
			ArticleID:          li.ArticleID,
			Quantity:           li.Quantity,
			ProcessingRequired: li.ProcessingRequired,
		})
	}

	return &OrderResponse{
		CreatedAt:             o.CreatedAt,
		PaymentStateUpdatedAt: o.PaymentStateUpdatedAt,
		CancellationReason:    o.CancellationReason,
		PlacedBy:              UserResponse{ID: o.PlacedBy.ID, ScreenName: o.PlacedBy.ScreenName},
		TotalAmount:           o.TotalAmount,
		ShopID:                o.ShopID,
		OrderNumber:           o.OrderNumber,
		Currency:              o.Currency,
		PaymentState:          o.PaymentState,
		LineItems:             items,
		ID:                    o.ID,
		ProcessingRequired:    o.ProcessingRequired,
		Processed:             o.Processed,
		Overdue:               domain.IsOverdue(o.CreatedAt, o.PaymentState),
	}
}

func ToOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *ToOrderResponse(&orders[i]))
	}
	return out
}

type OrderLogEntryResponse struct {
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
	EventType  string         `json:"event_type"`
	ID         int64          `json:"id,string"`
	OrderID    int64          `json:"order_id,string"`
}

func ToOrderLogEntryResponse(e *model.OrderLogEntry) *OrderLogEntryResponse {
	return &OrderLogEntryResponse{
		OccurredAt: e.OccurredAt,
		Data:       e.Data,
		EventType:  e.EventType,
		ID:         e.ID,
		OrderID:    e.OrderID,
	}
}

func ToOrderLogEntryResponses(entries []model.OrderLogEntry) []OrderLogEntryResponse {
	out := make([]OrderLogEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *ToOrderLogEntryResponse(&entries[i]))
	}
	return out
}

type PaymentResponse struct {
	CreatedAt      time.Time       `json:"created_at"`
	AdditionalData map[string]any  `json:"additional_data"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Currency       string          `json:"currency"`
	ID             int64           `json:"id,string"`
	OrderID        int64           `json:"order_id,string"`
}

func ToPaymentResponse(p *model.Payment) *PaymentResponse {
	return &PaymentResponse{
		CreatedAt:      p.CreatedAt,
		AdditionalData: p.AdditionalData,
		Amount:         p.Amount,
		Method:         p.Method,
		Currency:       p.Currency,
		ID:             p.ID,
		OrderID:        p.OrderID,
	}
}

func ToPaymentResponses(payments []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *ToPaymentResponse(&payments[i]))
	}
	return out
}
