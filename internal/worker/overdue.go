package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/The0mikkel/byceps/common/logger"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/metrics"
)

// OverdueReporter periodically counts open orders whose payment is overdue
// and publishes the number as a gauge.
type OverdueReporter struct {
	orders   OverdueCounter
	cron     *cron.Cron
	schedule string
	now      func() time.Time
}

func NewOverdueReporter(orders OverdueCounter, schedule string) *OverdueReporter {
	return &OverdueReporter{
		orders:   orders,
		cron:     cron.New(),
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the report with the scheduler and starts it. The first
// report runs immediately so the gauge is populated after a restart.
func (r *OverdueReporter) Start(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "byceps.worker.overdue"})

	if _, err := r.cron.AddFunc(r.schedule, func() {
		if _, err := r.RunOnce(ctx); err != nil {
			slog.ErrorContext(ctx, "overdue order report failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid overdue report schedule %q: %w", r.schedule, err)
	}

	if _, err := r.RunOnce(ctx); err != nil {
		slog.WarnContext(ctx, "initial overdue order report failed", "error", err)
	}

	r.cron.Start()
	slog.InfoContext(ctx, "overdue order report scheduled", "schedule", r.schedule)
	return nil
}

// Stop waits for a running report to finish.
func (r *OverdueReporter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *OverdueReporter) RunOnce(ctx context.Context) (int64, error) {
	cutoff := r.now().UTC().Add(-domain.OverdueThreshold)

	count, err := r.orders.CountOpenCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("counting overdue orders: %w", err)
	}

	metrics.SetOverdueOrders(count)
	slog.InfoContext(ctx, "overdue orders counted", "count", count, "created_before", cutoff)
	return count, nil
}
