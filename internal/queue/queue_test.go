package queue_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/queue"
)

type fakeStream struct {
	added []*redis.XAddArgs
	err   error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.added = append(f.added, a)
	return redis.NewStringResult("1700000000000-0", f.err)
}

type unregisteredEvent struct {
	domain.BaseEvent
}

func strPtr(s string) *string { return &s }

func paidEvent() domain.ShopOrderPaidEvent {
	return domain.ShopOrderPaidEvent{
		BaseEvent:     domain.NewBaseEvent(time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC), &domain.EventUser{ID: 1, ScreenName: strPtr("Admin")}),
		ShopID:        "lanparty-shop",
		OrderNumber:   "LP-24-B00042",
		PaymentMethod: "cash",
		Orderer:       domain.EventUser{ID: 10, ScreenName: strPtr("Gamer")},
		OrderID:       100,
	}
}

var _ = Describe("AnnouncementProducer", func() {
	var (
		ctx      context.Context
		stream   *fakeStream
		producer *queue.AnnouncementProducer
	)

	BeforeEach(func() {
		ctx = context.Background()
		stream = &fakeStream{}
		producer = queue.NewAnnouncementProducer(stream, "byceps_announcements", nil)
	})

	It("writes the event envelope to the stream", func() {
		event := paidEvent()

		Expect(producer.Handle(ctx, event)).To(Succeed())
		Expect(stream.added).To(HaveLen(1))
		Expect(stream.added[0].Stream).To(Equal("byceps_announcements"))

		values := stream.added[0].Values.(map[string]any)
		Expect(values).To(HaveKeyWithValue("task_type", "announce"))
		Expect(values).To(HaveKeyWithValue("event_name", "shop-order-paid"))
		Expect(values).To(HaveKeyWithValue("event_id", event.ID.String()))
		Expect(values).To(HaveKeyWithValue("attempt", 1))
		Expect(values).To(HaveKey("payload"))
		Expect(values).NotTo(HaveKey("trace_id"))
	})

	It("carries the trace ID of the current span", func() {
		traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
		spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
		ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		}))

		Expect(producer.Handle(ctx, paidEvent())).To(Succeed())
		values := stream.added[0].Values.(map[string]any)
		Expect(values).To(HaveKeyWithValue("trace_id", "0af7651916cd43dd8448eb211c80319c"))
	})

	It("refuses unregistered events", func() {
		err := producer.Handle(ctx, unregisteredEvent{})
		Expect(errors.Is(err, domain.ErrUnregisteredEvent)).To(BeTrue())
		Expect(stream.added).To(BeEmpty())
	})

	It("wraps stream errors", func() {
		stream.err = errors.New("connection refused")
		err := producer.Handle(ctx, paidEvent())
		Expect(err).To(MatchError(ContainSubstring("enqueue announcement")))
	})
})

var _ = Describe("ParseMessage", func() {
	It("restores the event that was enqueued", func() {
		stream := &fakeStream{}
		event := paidEvent()
		Expect(queue.NewAnnouncementProducer(stream, "s", nil).Handle(context.Background(), event)).To(Succeed())

		raw := map[string]any{}
		for k, v := range stream.added[0].Values.(map[string]any) {
			if s, ok := v.(string); ok {
				raw[k] = s
			}
		}
		raw["attempt"] = "2"

		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: raw})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1-0"))
		Expect(msg.EventName).To(Equal("shop-order-paid"))
		Expect(msg.EventID).To(Equal(event.ID.String()))
		Expect(msg.Attempt).To(Equal(2))

		decoded, err := msg.Event()
		Expect(err).NotTo(HaveOccurred())
		paid, ok := decoded.(domain.ShopOrderPaidEvent)
		Expect(ok).To(BeTrue())
		Expect(paid.OrderNumber).To(Equal("LP-24-B00042"))
		Expect(paid.ID).To(Equal(event.ID))
		Expect(paid.Orderer.DisplayName()).To(Equal("Gamer"))
	})

	It("defaults the attempt to one", func() {
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"task_type":  "announce",
			"event_name": "user-logged-in",
			"payload":    "{}",
		}})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
	})

	DescribeTable("rejects malformed messages",
		func(values map[string]any, message string) {
			_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("no task type", map[string]any{"event_name": "x", "payload": "{}"}, "missing task_type"),
		Entry("other task type", map[string]any{"task_type": "repo_sync"}, "unknown task_type"),
		Entry("no event name", map[string]any{"task_type": "announce", "payload": "{}"}, "missing event_name"),
		Entry("no payload", map[string]any{"task_type": "announce", "event_name": "x"}, "missing payload"),
		Entry("bad attempt", map[string]any{"task_type": "announce", "event_name": "x", "payload": "{}", "attempt": "two"}, "parsing attempt"),
	)

	It("leaves unknown event names to the decoder", func() {
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"task_type":  "announce",
			"event_name": "tourney-started",
			"payload":    "{}",
		}})
		Expect(err).NotTo(HaveOccurred())

		_, err = msg.Event()
		Expect(errors.Is(err, domain.ErrUnregisteredEvent)).To(BeTrue())
	})
})
