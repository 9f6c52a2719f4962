package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/service"
	"github.com/The0mikkel/byceps/internal/store"
)

// statusFor maps service and domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderAlreadyMarkedAsPaid),
		errors.Is(err, domain.ErrOrderAlreadyCanceled),
		errors.Is(err, domain.ErrOrderNotShippable),
		errors.Is(err, service.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, service.ErrCurrencyMismatch),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidWebhook):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), msg, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if status == http.StatusNotFound {
		c.JSON(status, gin.H{"error": "not found"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
