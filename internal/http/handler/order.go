package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/http/dto"
	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) ListLogEntries(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.orders.ListLogEntries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to list order log entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderLogEntryResponses(entries))
}

func (h *OrderHandler) ListPayments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.orders.ListPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

func (h *OrderHandler) MarkAsPaid(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.MarkAsPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.MarkAsPaid(c.Request.Context(), service.MarkAsPaidParams{
		AdditionalPaymentData: req.AdditionalPaymentData,
		PaymentMethod:         req.PaymentMethod,
		OrderID:               id,
		InitiatorID:           req.InitiatorID,
	})
	if err != nil {
		respondError(c, err, "failed to mark order as paid")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), service.CancelParams{
		Reason:      req.Reason,
		OrderID:     id,
		InitiatorID: req.InitiatorID,
	})
	if err != nil {
		respondError(c, err, "failed to cancel order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *OrderHandler) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.orders.AddPayment(c.Request.Context(), service.AddPaymentParams{
		AdditionalData: req.AdditionalData,
		Amount:         req.Amount,
		Method:         req.Method,
		Currency:       req.Currency,
		OrderID:        id,
		InitiatorID:    req.InitiatorID,
	})
	if err != nil {
		respondError(c, err, "failed to add payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *OrderHandler) AddNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.orders.AddNote(c.Request.Context(), id, req.AuthorID, req.Text)
	if err != nil {
		respondError(c, err, "failed to add note")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderLogEntryResponse(entry))
}

func (h *OrderHandler) SetShipped(c *gin.Context) {
	h.toggleShipped(c, h.orders.SetShippedFlag)
}

func (h *OrderHandler) UnsetShipped(c *gin.Context) {
	h.toggleShipped(c, h.orders.UnsetShippedFlag)
}

func (h *OrderHandler) toggleShipped(c *gin.Context, fn func(ctx context.Context, orderID, initiatorID int64) (*model.OrderLogEntry, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ShippedFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := fn(c.Request.Context(), id, req.InitiatorID)
	if err != nil {
		respondError(c, err, "failed to update shipped flag")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderLogEntryResponse(entry))
}

func (h *OrderHandler) ListOverdue(c *gin.Context) {
	shopID := c.Param("shop_id")
	if shopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop_id"})
		return
	}

	orders, err := h.orders.ListOverdue(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "failed to list overdue orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}
