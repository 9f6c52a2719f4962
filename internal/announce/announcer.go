package announce

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/The0mikkel/byceps/common/logger"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/metrics"
	"github.com/The0mikkel/byceps/internal/model"
)

// WebhookSource provides the webhooks registered for an event name.
type WebhookSource interface {
	ListEnabledForEvent(ctx context.Context, eventName string) ([]model.OutgoingWebhook, error)
}

// Report summarizes one announcement fan-out.
type Report struct {
	EventName string
	Delivered int
	Failed    int
	Skipped   int
}

// Announcer delivers domain events to the webhooks interested in them.
// It only reads webhook configuration and never touches orders.
type Announcer struct {
	webhooks WebhookSource
	caller   Caller
	logger   *slog.Logger
}

func NewAnnouncer(webhooks WebhookSource, caller Caller) *Announcer {
	return &Announcer{
		webhooks: webhooks,
		caller:   caller,
		logger:   slog.Default().With("component", "byceps.announce.announcer"),
	}
}

// Handle makes the announcer an event bus subscriber.
func (a *Announcer) Handle(ctx context.Context, event domain.Event) error {
	_, err := a.Announce(ctx, event)
	return err
}

// Announce sends the event to every matching webhook. Only an unregistered
// event type or a failing webhook lookup is returned as an error; delivery
// failures are logged per webhook and do not stop the fan-out.
func (a *Announcer) Announce(ctx context.Context, event domain.Event) (Report, error) {
	eventName, err := domain.EventName(event)
	if err != nil {
		return Report{}, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		EventName: &eventName,
		Component: "byceps.announce.announcer",
	})

	sc := logger.StartSpan(ctx, "announce.fan_out")
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(attribute.String("event.name", eventName))

	report := Report{EventName: eventName}

	webhooks, err := a.webhooks.ListEnabledForEvent(ctx, eventName)
	if err != nil {
		sc.RecordError(err)
		return report, fmt.Errorf("listing webhooks for %s: %w", eventName, err)
	}
	if len(webhooks) == 0 {
		return report, nil
	}

	sort.SliceStable(webhooks, func(i, j int) bool {
		return webhooks[i].Channel() < webhooks[j].Channel()
	})

	text, ok := RenderText(event)
	if !ok {
		a.logger.DebugContext(ctx, "event has no announcement text")
		report.Skipped = len(webhooks)
		return report, nil
	}

	for _, webhook := range webhooks {
		if !matchesEvent(eventName, webhook, event) {
			report.Skipped++
			continue
		}

		hookCtx := logger.WithLogFields(ctx, logger.LogFields{WebhookID: &webhook.ID})

		start := time.Now()
		err := a.caller.CallWebhook(hookCtx, webhook, text)
		metrics.RecordWebhookDelivery(string(webhook.Format), time.Since(start), err)
		if err != nil {
			report.Failed++
			sc.RecordError(err)
			a.logger.WarnContext(hookCtx, "webhook delivery failed",
				"format", webhook.Format,
				"error", err)
			continue
		}
		report.Delivered++
	}

	a.logger.InfoContext(ctx, "event announced",
		"delivered", report.Delivered,
		"failed", report.Failed,
		"skipped", report.Skipped)

	return report, nil
}
