package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/http/dto"
	"github.com/The0mikkel/byceps/internal/service"
)

type WebhookHandler struct {
	webhooks service.WebhookService
}

func NewWebhookHandler(webhooks service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

func (h *WebhookHandler) List(c *gin.Context) {
	webhooks, err := h.webhooks.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list webhooks")
		return
	}

	c.JSON(http.StatusOK, dto.ToWebhookResponses(webhooks))
}

func (h *WebhookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	webhook, err := h.webhooks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get webhook")
		return
	}

	c.JSON(http.StatusOK, dto.ToWebhookResponse(webhook))
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	webhook, err := h.webhooks.Create(c.Request.Context(), req.ToModel(0))
	if err != nil {
		respondError(c, err, "failed to create webhook")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWebhookResponse(webhook))
}

func (h *WebhookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	webhook, err := h.webhooks.Update(c.Request.Context(), req.ToModel(id))
	if err != nil {
		respondError(c, err, "failed to update webhook")
		return
	}

	c.JSON(http.StatusOK, dto.ToWebhookResponse(webhook))
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.webhooks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete webhook")
		return
	}

	c.Status(http.StatusNoContent)
}

// Test sends a test message to the webhook. Delivery failures are reported
// in the body with status 200; only lookup errors change the status code.
func (h *WebhookHandler) Test(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.WebhookTestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.webhooks.SendTest(c.Request.Context(), id, req.Text)
	if err != nil {
		respondError(c, err, "failed to send test webhook")
		return
	}

	c.JSON(http.StatusOK, result)
}
