package router

import (
	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/http/handler"
)

func WebhookRouter(rg *gin.RouterGroup, h *handler.WebhookHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/test", h.Test)
}
