package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/The0mikkel/byceps/common/logger"
	"github.com/The0mikkel/byceps/internal/metrics"
	"github.com/The0mikkel/byceps/internal/queue"
)

type RedisReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// MessageHandler settles a queue message (ack, requeue or DLQ).
type MessageHandler func(ctx context.Context, msg queue.Message)

// StreamClaimer is the part of the Redis client the reclaimer needs.
type StreamClaimer interface {
	XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd
}

// RedisReclaimer takes over messages that were delivered to a consumer but
// never settled, e.g. because the worker crashed between XREADGROUP and XACK.
type RedisReclaimer struct {
	client   StreamClaimer
	cfg      RedisReclaimerConfig
	consumer Consumer
	handle   MessageHandler

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewRedisReclaimer(client StreamClaimer, cfg RedisReclaimerConfig, consumer Consumer, handle MessageHandler) *RedisReclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &RedisReclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		handle:    handle,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run reclaims on every tick until Stop is called or ctx is done.
func (r *RedisReclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "byceps.worker.reclaimer",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle,
		"stream", r.cfg.Stream,
		"group", r.cfg.Group)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			claimed, err := r.ReclaimOnce(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "reclaim cycle error", "error", err, "claimed", claimed)
			} else if claimed > 0 {
				slog.InfoContext(ctx, "reclaim cycle finished", "claimed", claimed)
			}
		}
	}
}

func (r *RedisReclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ReclaimOnce walks the pending entries list with XAUTOCLAIM and hands every
// message idle for longer than MinIdle to the handler. It returns the number
// of messages claimed.
func (r *RedisReclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	claimed := 0
	cursor := "0-0"
	for {
		messages, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("xautoclaim: %w", err)
		}

		for _, msg := range messages {
			r.settle(ctx, msg)
			claimed++
		}

		if next == "" || next == "0-0" || ctx.Err() != nil {
			return claimed, nil
		}
		cursor = next
	}
}

func (r *RedisReclaimer) settle(ctx context.Context, msg redis.XMessage) {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})
	metrics.RecordQueueMessage("reclaimed")

	parsed, err := queue.ParseMessage(msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse reclaimed message, sending to DLQ", "error", err)
		if err := r.consumer.SendDLQ(ctx, queue.Message{ID: msg.ID, Raw: msg}, err.Error()); err != nil {
			slog.ErrorContext(ctx, "failed to dead-letter reclaimed message", "error", err)
		}
		return
	}

	slog.InfoContext(ctx, "reclaimed stale message",
		"event_name", parsed.EventName,
		"attempt", parsed.Attempt)
	r.handle(ctx, parsed)
}
