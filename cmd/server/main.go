package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/The0mikkel/byceps/common/id"
	"github.com/The0mikkel/byceps/common/logger"
	"github.com/The0mikkel/byceps/common/otel"
	"github.com/The0mikkel/byceps/core/config"
	"github.com/The0mikkel/byceps/core/db"
	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/eventbus"
	"github.com/The0mikkel/byceps/internal/http/middleware"
	httprouter "github.com/The0mikkel/byceps/internal/http/router"
	"github.com/The0mikkel/byceps/internal/queue"
	"github.com/The0mikkel/byceps/internal/service"
	"github.com/The0mikkel/byceps/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "byceps server starting",
		"env", cfg.Env,
		"service", cfg.OTel.ServiceName,
		"announce_mode", cfg.Announce.Mode)

	if err := id.Init(cfg.SnowflakeNodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	stores := store.NewStores(database.Queries())
	caller := announce.NewClient(cfg.Announce.WebhookTimeout)

	bus := eventbus.New()
	if cfg.Announce.Queued() {
		redisClient, err := connectRedis(ctx, cfg.Pipeline)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

		bus.Subscribe(queue.NewAnnouncementProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default()))
	} else {
		bus.Subscribe(announce.NewAnnouncer(stores.Webhooks(), caller))
	}

	services := service.NewServices(stores, service.NewTxRunner(database), bus, caller)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func connectRedis(ctx context.Context, cfg config.PipelineConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("REDIS_URL and REDIS_STREAM are required in queue mode")
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		Ping:        database.Ping,
		AdminAPIKey: cfg.AdminAPIKey,
	})

	return router
}

const banner = `
 ____  _  _  ___  ____  ____  ___
(  _ \( \/ )/ __)( ___)(  _ \/ __)
 ) _ < \  /( (__  )__)  )___/\__ \
(____/ (__) \___)(____)(__)  (___/   shop server
`
