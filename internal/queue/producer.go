package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/The0mikkel/byceps/internal/domain"
)

// StreamWriter is the part of the Redis client the producer needs.
type StreamWriter interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// AnnouncementProducer hands domain events to the announcement stream. It is
// subscribed to the event bus when announcements run in the worker.
type AnnouncementProducer struct {
	client StreamWriter
	stream string
	logger *slog.Logger
}

func NewAnnouncementProducer(client StreamWriter, stream string, logger *slog.Logger) *AnnouncementProducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnouncementProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Handle enqueues event, carrying the current trace ID along.
func (p *AnnouncementProducer) Handle(ctx context.Context, event domain.Event) error {
	var traceID string
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}

	task, err := NewAnnounceTask(event, traceID)
	if err != nil {
		return err
	}
	return p.Enqueue(ctx, task)
}

func (p *AnnouncementProducer) Enqueue(ctx context.Context, task Task) error {
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: task.values(task.Attempt),
	}).Result()
	if err != nil {
		return fmt.Errorf("enqueue announcement: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued announcement",
		"message_id", id,
		"event_name", task.EventName,
		"event_id", task.EventID)
	return nil
}
