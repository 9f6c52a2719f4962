package router

import (
	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/http/handler"
)

func OrderRouter(rg *gin.RouterGroup, h *handler.OrderHandler) {
	rg.GET("/:id", h.Get)
	rg.GET("/:id/log", h.ListLogEntries)
	rg.GET("/:id/payments", h.ListPayments)
	rg.POST("/:id/payments", h.AddPayment)
	rg.POST("/:id/mark-paid", h.MarkAsPaid)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/notes", h.AddNote)
	rg.POST("/:id/shipped", h.SetShipped)
	rg.DELETE("/:id/shipped", h.UnsetShipped)
}

func ShopRouter(rg *gin.RouterGroup, h *handler.OrderHandler) {
	rg.GET("/:shop_id/orders/overdue", h.ListOverdue)
}
