package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"

	"github.com/The0mikkel/byceps/core/config"
)

// Setup installs the default slog logger for the environment.
func Setup(cfg config.Config) {
	slog.SetDefault(slog.New(NewHandler(cfg, os.Stdout)))
}

// NewHandler returns a text handler in development, JSON in production and
// the OTel log bridge when production runs with an OTLP endpoint. Everything
// but the bridge is wrapped in a TraceHandler.
func NewHandler(cfg config.Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: Level(cfg)}

	switch {
	case cfg.IsProduction() && cfg.OTel.Enabled():
		return otelslog.NewHandler(
			cfg.OTel.ServiceName,
			otelslog.WithLoggerProvider(global.GetLoggerProvider()),
		)
	case cfg.IsProduction():
		return NewTraceHandler(slog.NewJSONHandler(w, opts))
	default:
		return NewTraceHandler(slog.NewTextHandler(w, opts))
	}
}

// Level resolves LOG_LEVEL, defaulting to debug in development and info
// elsewhere. Unknown values fall back to the default.
func Level(cfg config.Config) slog.Level {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	if cfg.LogLevel != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err == nil {
			level = parsed
		}
	}
	return level
}

// TraceHandler adds trace/span IDs and the context's LogFields to every record.
type TraceHandler struct {
	slog.Handler
}

func NewTraceHandler(h slog.Handler) *TraceHandler {
	return &TraceHandler{Handler: h}
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	r.AddAttrs(GetLogFields(ctx).attrs()...)
	return h.Handler.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}

func (f LogFields) attrs() []slog.Attr {
	var attrs []slog.Attr
	if f.OrderID != nil {
		attrs = append(attrs, slog.Int64("order_id", *f.OrderID))
	}
	if f.ShopID != nil {
		attrs = append(attrs, slog.String("shop_id", *f.ShopID))
	}
	if f.WebhookID != nil {
		attrs = append(attrs, slog.Int64("webhook_id", *f.WebhookID))
	}
	if f.EventName != nil {
		attrs = append(attrs, slog.String("event_name", *f.EventName))
	}
	if f.MessageID != nil {
		attrs = append(attrs, slog.String("message_id", *f.MessageID))
	}
	if f.Component != "" {
		attrs = append(attrs, slog.String("component", f.Component))
	}
	return attrs
}
