package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/The0mikkel/byceps/common/id"
	"github.com/The0mikkel/byceps/internal/model"
)

// OverdueThreshold is how long an open order may stay unpaid.
const OverdueThreshold = 14 * 24 * time.Hour

const (
	LogEntryNoteAdded          = "order-note-added"
	LogEntryShipped            = "order-shipped"
	LogEntryShippedWithdrawn   = "order-shipped-withdrawn"
	LogEntryPaymentCreated     = "order-payment-created"
	LogEntryPaid               = "order-paid"
	LogEntryCanceledBeforePaid = "order-canceled-before-paid"
	LogEntryCanceledAfterPaid  = "order-canceled-after-paid"
)

// AddNote records a free-text note on the order.
func AddNote(order model.Order, author model.User, text string) model.OrderLogEntry {
	return newLogEntry(order.ID, time.Now().UTC(), LogEntryNoteAdded, map[string]any{
		"author_id": formatID(author.ID),
		"text":      text,
	})
}

func SetShippedFlag(order model.Order, initiator model.User) (model.OrderLogEntry, error) {
	if !order.ProcessingRequired {
		return model.OrderLogEntry{}, ErrOrderNotShippable
	}

	return newLogEntry(order.ID, time.Now().UTC(), LogEntryShipped, map[string]any{
		"initiator_id": formatID(initiator.ID),
	}), nil
}

func UnsetShippedFlag(order model.Order, initiator model.User) (model.OrderLogEntry, error) {
	if !order.ProcessingRequired {
		return model.OrderLogEntry{}, ErrOrderNotShippable
	}

	return newLogEntry(order.ID, time.Now().UTC(), LogEntryShippedWithdrawn, map[string]any{
		"initiator_id": formatID(initiator.ID),
	}), nil
}

// CreatePayment builds a payment record for the order. Payments are additive
// and not gated by the payment state.
func CreatePayment(
	order model.Order,
	createdAt time.Time,
	method string,
	amount decimal.Decimal,
	initiator model.User,
	additionalData map[string]any,
) (model.Payment, model.OrderLogEntry) {
	if additionalData == nil {
		additionalData = map[string]any{}
	}

	payment := model.Payment{
		ID:             id.New(),
		OrderID:        order.ID,
		CreatedAt:      createdAt,
		Method:         method,
		Amount:         amount,
		Currency:       order.Currency,
		AdditionalData: additionalData,
	}

	entry := newLogEntry(order.ID, createdAt, LogEntryPaymentCreated, map[string]any{
		"payment_id":   formatID(payment.ID),
		"initiator_id": formatID(initiator.ID),
	})

	return payment, entry
}

// MarkOrderAsPaid decides the open → paid transition.
//
// Additional payment data is merged into the log entry first so that
// former_payment_state, payment_method and initiator_id always win.
func MarkOrderAsPaid(
	order model.Order,
	orderer model.User,
	occurredAt time.Time,
	paymentMethod string,
	additionalPaymentData map[string]any,
	initiator model.User,
) (ShopOrderPaidEvent, model.OrderLogEntry, error) {
	if order.IsPaid() {
		return ShopOrderPaidEvent{}, model.OrderLogEntry{}, ErrOrderAlreadyMarkedAsPaid
	}
	if order.IsCanceled() {
		return ShopOrderPaidEvent{}, model.OrderLogEntry{}, ErrOrderAlreadyCanceled
	}

	event := ShopOrderPaidEvent{
		BaseEvent:     NewBaseEvent(occurredAt, EventUserPtr(initiator)),
		ShopID:        order.ShopID,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Orderer:       EventUserFrom(orderer),
		PaymentMethod: paymentMethod,
	}

	data := make(map[string]any, len(additionalPaymentData)+3)
	for k, v := range additionalPaymentData {
		data[k] = v
	}
	data["former_payment_state"] = string(order.PaymentState)
	data["payment_method"] = paymentMethod
	data["initiator_id"] = formatID(initiator.ID)

	return event, newLogEntry(order.ID, occurredAt, LogEntryPaid, data), nil
}

// CancelOrder decides the open → canceled_before_paid and
// paid → canceled_after_paid transitions.
func CancelOrder(
	order model.Order,
	orderer model.User,
	occurredAt time.Time,
	reason string,
	initiator model.User,
) (ShopOrderCanceledEvent, model.OrderLogEntry, error) {
	if order.IsCanceled() {
		return ShopOrderCanceledEvent{}, model.OrderLogEntry{}, ErrOrderAlreadyCanceled
	}

	event := ShopOrderCanceledEvent{
		BaseEvent:   NewBaseEvent(occurredAt, EventUserPtr(initiator)),
		ShopID:      order.ShopID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Orderer:     EventUserFrom(orderer),
	}

	eventType := LogEntryCanceledBeforePaid
	if order.IsPaid() {
		eventType = LogEntryCanceledAfterPaid
	}

	entry := newLogEntry(order.ID, occurredAt, eventType, map[string]any{
		"former_payment_state": string(order.PaymentState),
		"reason":               reason,
		"initiator_id":         formatID(initiator.ID),
	})

	return event, entry, nil
}

// CanceledPaymentState returns the state a cancellation moves the order to.
func CanceledPaymentState(order model.Order) model.PaymentState {
	if order.IsPaid() {
		return model.PaymentStateCanceledAfterPaid
	}
	return model.PaymentStateCanceledBeforePaid
}

// IsOverdue reports whether payment of an open order is overdue.
func IsOverdue(createdAt time.Time, paymentState model.PaymentState) bool {
	return IsOverdueAt(createdAt, paymentState, time.Now())
}

func IsOverdueAt(createdAt time.Time, paymentState model.PaymentState, now time.Time) bool {
	if paymentState != model.PaymentStateOpen {
		return false
	}
	return !now.Before(createdAt.Add(OverdueThreshold))
}

func newLogEntry(orderID int64, occurredAt time.Time, eventType string, data map[string]any) model.OrderLogEntry {
	return model.OrderLogEntry{
		ID:         id.New(),
		OccurredAt: occurredAt,
		EventType:  eventType,
		OrderID:    orderID,
		Data:       data,
	}
}

// IDs are stored as strings in log entry data so they survive JSON
// round trips through clients that parse numbers as floats.
func formatID(v int64) string {
	return strconv.FormatInt(v, 10)
}
