package handler_test

import (
	"context"

	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/service"
)

type mockOrderService struct {
	getFn          func(ctx context.Context, id int64) (*model.Order, error)
	listLogFn      func(ctx context.Context, id int64) ([]model.OrderLogEntry, error)
	listPaymentsFn func(ctx context.Context, id int64) ([]model.Payment, error)
	markAsPaidFn   func(ctx context.Context, params service.MarkAsPaidParams) (*model.Order, error)
	cancelFn       func(ctx context.Context, params service.CancelParams) (*model.Order, error)
	addPaymentFn   func(ctx context.Context, params service.AddPaymentParams) (*model.Payment, error)
	addNoteFn      func(ctx context.Context, orderID, authorID int64, text string) (*model.OrderLogEntry, error)
	setShippedFn   func(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error)
	unsetShippedFn func(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error)
	listOverdueFn  func(ctx context.Context, shopID string) ([]model.Order, error)
}

var _ service.OrderService = (*mockOrderService)(nil)

func (m *mockOrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderService) ListLogEntries(ctx context.Context, id int64) ([]model.OrderLogEntry, error) {
	if m.listLogFn != nil {
		return m.listLogFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderService) ListPayments(ctx context.Context, id int64) ([]model.Payment, error) {
	if m.listPaymentsFn != nil {
		return m.listPaymentsFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderService) MarkAsPaid(ctx context.Context, params service.MarkAsPaidParams) (*model.Order, error) {
	if m.markAsPaidFn != nil {
		return m.markAsPaidFn(ctx, params)
	}
	return nil, nil
}

func (m *mockOrderService) Cancel(ctx context.Context, params service.CancelParams) (*model.Order, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, params)
	}
	return nil, nil
}

func (m *mockOrderService) AddPayment(ctx context.Context, params service.AddPaymentParams) (*model.Payment, error) {
	if m.addPaymentFn != nil {
		return m.addPaymentFn(ctx, params)
	}
	return nil, nil
}

func (m *mockOrderService) AddNote(ctx context.Context, orderID, authorID int64, text string) (*model.OrderLogEntry, error) {
	if m.addNoteFn != nil {
		return m.addNoteFn(ctx, orderID, authorID, text)
	}
	return nil, nil
}

func (m *mockOrderService) SetShippedFlag(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error) {
	if m.setShippedFn != nil {
		return m.setShippedFn(ctx, orderID, initiatorID)
	}
	return nil, nil
}

func (m *mockOrderService) UnsetShippedFlag(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error) {
	if m.unsetShippedFn != nil {
		return m.unsetShippedFn(ctx, orderID, initiatorID)
	}
	return nil, nil
}

func (m *mockOrderService) ListOverdue(ctx context.Context, shopID string) ([]model.Order, error) {
	if m.listOverdueFn != nil {
		return m.listOverdueFn(ctx, shopID)
	}
	return nil, nil
}

type mockWebhookService struct {
	createFn   func(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error)
	getFn      func(ctx context.Context, id int64) (*model.OutgoingWebhook, error)
	listFn     func(ctx context.Context) ([]model.OutgoingWebhook, error)
	updateFn   func(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error)
	deleteFn   func(ctx context.Context, id int64) error
	sendTestFn func(ctx context.Context, id int64, text string) (*service.WebhookTestResult, error)
}

var _ service.WebhookService = (*mockWebhookService)(nil)

func (m *mockWebhookService) Create(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	if m.createFn != nil {
		return m.createFn(ctx, webhook)
	}
	return &webhook, nil
}

func (m *mockWebhookService) Get(ctx context.Context, id int64) (*model.OutgoingWebhook, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockWebhookService) List(ctx context.Context) ([]model.OutgoingWebhook, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockWebhookService) Update(ctx context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, webhook)
	}
	return &webhook, nil
}

func (m *mockWebhookService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockWebhookService) SendTest(ctx context.Context, id int64, text string) (*service.WebhookTestResult, error) {
	if m.sendTestFn != nil {
		return m.sendTestFn(ctx, id, text)
	}
	return &service.WebhookTestResult{Delivered: true}, nil
}
