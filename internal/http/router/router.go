package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/The0mikkel/byceps/internal/http/handler"
	"github.com/The0mikkel/byceps/internal/http/middleware"
	"github.com/The0mikkel/byceps/internal/metrics"
	"github.com/The0mikkel/byceps/internal/service"
)

type RouterConfig struct {
	// Ping reports whether the database is reachable. Nil skips the check.
	Ping        func(ctx context.Context) error
	AdminAPIKey string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.Use(metrics.GinMiddleware())

	router.GET("/health", func(c *gin.Context) {
		if cfg.Ping != nil {
			if err := cfg.Ping(c.Request.Context()); err != nil {
				slog.WarnContext(c.Request.Context(), "health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAdminKey(cfg.AdminAPIKey))
	{
		orderHandler := handler.NewOrderHandler(services.Orders())
		OrderRouter(v1.Group("/orders"), orderHandler)
		ShopRouter(v1.Group("/shops"), orderHandler)

		webhookHandler := handler.NewWebhookHandler(services.Webhooks())
		WebhookRouter(v1.Group("/webhooks"), webhookHandler)

		v1.GET("/order-actions/schema", handler.ListActionSchemas)
	}
}
