package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/The0mikkel/byceps/common/logger"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/metrics"
	"github.com/The0mikkel/byceps/internal/queue"
)

type Config struct {
	MaxAttempts int
}

// Worker drains the announcement stream and fans each event out to webhooks.
type Worker struct {
	consumer  Consumer
	announcer Announcer
	cfg       Config
	seen      *recentEvents

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, announcer Announcer, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Worker{
		consumer:  consumer,
		announcer: announcer,
		cfg:       cfg,
		seen:      newRecentEvents(4096),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "byceps.worker"})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.Handle(ctx, msg)
	}
	return nil
}

// Handle processes one message and settles it: ack on success, requeue on a
// transient failure, DLQ once attempts run out or the event can never be
// decoded. Exported so it can be reused by the reclaimer.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msgID,
		EventName: &msg.EventName,
	})

	err := w.processMessageSafe(ctx, msg)
	if err == nil {
		metrics.RecordQueueMessage("announced")
		if ackErr := w.consumer.Ack(ctx, msg); ackErr != nil {
			// The reclaimer will pick it up again; the event id dedupes it.
			slog.WarnContext(ctx, "failed to ACK message", "error", ackErr)
		}
		return
	}

	slog.ErrorContext(ctx, "message processing failed",
		"error", err,
		"event_id", msg.EventID,
		"attempt", msg.Attempt)
	w.handleFailedMessage(ctx, msg, err)
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	if msg.EventID != "" && w.seen.Contains(msg.EventID) {
		slog.InfoContext(ctx, "event already announced, skipping", "event_id", msg.EventID)
		return nil
	}

	event, err := msg.Event()
	if err != nil {
		return err
	}

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.announce")
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "announcing event", "event_id", msg.EventID, "attempt", msg.Attempt)

	report, err := w.announcer.Announce(ctx, event)
	if err != nil {
		return err
	}

	w.seen.Add(msg.EventID)
	slog.InfoContext(ctx, "event announced",
		"delivered", report.Delivered,
		"failed", report.Failed,
		"skipped", report.Skipped)
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	permanent := errors.Is(err, domain.ErrUnregisteredEvent)
	if permanent || msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "sending message to DLQ",
			"attempts", msg.Attempt,
			"permanent", permanent)
		metrics.RecordQueueMessage("dead_lettered")
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	metrics.RecordQueueMessage("requeued")
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
