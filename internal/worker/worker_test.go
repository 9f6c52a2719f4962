package worker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/queue"
	"github.com/The0mikkel/byceps/internal/worker"
)

type fakeConsumer struct {
	mu       sync.Mutex
	acked    []string
	requeued []string
	dlq      map[string]string
}

func newFakeConsumer() *fakeConsumer {
	return &fakeConsumer{dlq: map[string]string{}}
}

func (f *fakeConsumer) Read(_ context.Context) ([]queue.Message, error) { return nil, nil }

func (f *fakeConsumer) Ack(_ context.Context, msg queue.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, msg.ID)
	return nil
}

func (f *fakeConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requeued = append(f.requeued, msg.ID)
	return nil
}

func (f *fakeConsumer) SendDLQ(_ context.Context, msg queue.Message, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dlq[msg.ID] = errMsg
	return nil
}

type fakeAnnouncer struct {
	announceFn func(ctx context.Context, event domain.Event) (announce.Report, error)
	events     []domain.Event
}

func (f *fakeAnnouncer) Announce(ctx context.Context, event domain.Event) (announce.Report, error) {
	f.events = append(f.events, event)
	if f.announceFn != nil {
		return f.announceFn(ctx, event)
	}
	return announce.Report{Delivered: 1}, nil
}

func strPtr(s string) *string { return &s }

func messageFor(id string, event domain.Event, attempt int) queue.Message {
	task, err := queue.NewAnnounceTask(event, "")
	Expect(err).NotTo(HaveOccurred())
	task.Attempt = attempt
	return queue.Message{ID: id, Task: task}
}

var _ = Describe("Worker", func() {
	var (
		ctx       context.Context
		consumer  *fakeConsumer
		announcer *fakeAnnouncer
		w         *worker.Worker
		event     domain.Event
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = newFakeConsumer()
		announcer = &fakeAnnouncer{}
		w = worker.New(consumer, announcer, worker.Config{MaxAttempts: 3})
		event = domain.UserBadgeAwardedEvent{
			BaseEvent:  domain.NewBaseEvent(time.Now().UTC(), nil),
			BadgeLabel: "First Post!",
			Awardee:    domain.EventUser{ID: 3, ScreenName: strPtr("Erster")},
		}
	})

	It("announces the decoded event and acks", func() {
		w.Handle(ctx, messageFor("1-0", event, 1))

		Expect(consumer.acked).To(Equal([]string{"1-0"}))
		Expect(announcer.events).To(HaveLen(1))
		decoded, ok := announcer.events[0].(domain.UserBadgeAwardedEvent)
		Expect(ok).To(BeTrue())
		Expect(decoded.BadgeLabel).To(Equal("First Post!"))
		Expect(decoded.ID).To(Equal(event.Base().ID))
	})

	It("does not announce the same event twice", func() {
		w.Handle(ctx, messageFor("1-0", event, 1))
		w.Handle(ctx, messageFor("2-0", event, 1))

		Expect(announcer.events).To(HaveLen(1))
		Expect(consumer.acked).To(Equal([]string{"1-0", "2-0"}))
	})

	It("requeues transient failures", func() {
		announcer.announceFn = func(context.Context, domain.Event) (announce.Report, error) {
			return announce.Report{}, errors.New("db unavailable")
		}

		w.Handle(ctx, messageFor("1-0", event, 1))
		Expect(consumer.requeued).To(Equal([]string{"1-0"}))
		Expect(consumer.acked).To(BeEmpty())
		Expect(consumer.dlq).To(BeEmpty())
	})

	It("dead-letters after the last attempt", func() {
		announcer.announceFn = func(context.Context, domain.Event) (announce.Report, error) {
			return announce.Report{}, errors.New("db unavailable")
		}

		w.Handle(ctx, messageFor("1-0", event, 3))
		Expect(consumer.requeued).To(BeEmpty())
		Expect(consumer.dlq).To(HaveKeyWithValue("1-0", "db unavailable"))
	})

	It("dead-letters unknown event names right away", func() {
		msg := queue.Message{ID: "1-0", Task: queue.Task{
			TaskType:  queue.TaskTypeAnnounce,
			EventName: "tourney-started",
			Payload:   []byte("{}"),
			Attempt:   1,
		}}

		w.Handle(ctx, msg)
		Expect(consumer.dlq).To(HaveKey("1-0"))
		Expect(consumer.requeued).To(BeEmpty())
		Expect(announcer.events).To(BeEmpty())
	})

	It("recovers from a panicking announcer", func() {
		announcer.announceFn = func(context.Context, domain.Event) (announce.Report, error) {
			panic("boom")
		}

		Expect(func() { w.Handle(ctx, messageFor("1-0", event, 1)) }).NotTo(Panic())
		Expect(consumer.requeued).To(Equal([]string{"1-0"}))
	})
})
