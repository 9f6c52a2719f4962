package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/queue"
	"github.com/The0mikkel/byceps/internal/worker"
)

type claimPage struct {
	messages []redis.XMessage
	next     string
	err      error
}

type fakeClaimer struct {
	pages []claimPage
	calls []*redis.XAutoClaimArgs
}

func (f *fakeClaimer) XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd {
	f.calls = append(f.calls, a)
	cmd := redis.NewXAutoClaimCmd(ctx)
	if len(f.pages) == 0 {
		cmd.SetVal(nil, "0-0")
		return cmd
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	if page.err != nil {
		cmd.SetErr(page.err)
		return cmd
	}
	cmd.SetVal(page.messages, page.next)
	return cmd
}

func rawMessage(id string, event domain.Event) redis.XMessage {
	task, err := queue.NewAnnounceTask(event, "")
	Expect(err).NotTo(HaveOccurred())
	return redis.XMessage{
		ID: id,
		Values: map[string]any{
			"task_type":  string(task.TaskType),
			"event_name": task.EventName,
			"event_id":   task.EventID,
			"payload":    string(task.Payload),
			"attempt":    "2",
		},
	}
}

var _ = Describe("RedisReclaimer", func() {
	var (
		ctx      context.Context
		claimer  *fakeClaimer
		consumer *fakeConsumer
		handled  []queue.Message
		r        *worker.RedisReclaimer
		event    domain.Event
	)

	BeforeEach(func() {
		ctx = context.Background()
		claimer = &fakeClaimer{}
		consumer = newFakeConsumer()
		handled = nil
		r = worker.NewRedisReclaimer(claimer, worker.RedisReclaimerConfig{
			Stream:   "byceps_announcements",
			Group:    "byceps_announcers",
			Consumer: "worker-reclaimer",
			MinIdle:  2 * time.Minute,
		}, consumer, func(_ context.Context, msg queue.Message) {
			handled = append(handled, msg)
		})
		event = domain.UserBadgeAwardedEvent{
			BaseEvent:  domain.NewBaseEvent(time.Now().UTC(), nil),
			BadgeLabel: "Night Owl",
			Awardee:    domain.EventUser{ID: 5},
		}
	})

	It("follows the cursor until the pending list is exhausted", func() {
		claimer.pages = []claimPage{
			{messages: []redis.XMessage{rawMessage("1-0", event)}, next: "5-0"},
			{messages: []redis.XMessage{rawMessage("6-0", event)}, next: "0-0"},
		}

		claimed, err := r.ReclaimOnce(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(claimed).To(Equal(2))
		Expect(handled).To(HaveLen(2))
		Expect(handled[0].Attempt).To(Equal(2))
		Expect(claimer.calls).To(HaveLen(2))
		Expect(claimer.calls[0].Start).To(Equal("0-0"))
		Expect(claimer.calls[1].Start).To(Equal("5-0"))
		Expect(claimer.calls[0].MinIdle).To(Equal(2 * time.Minute))
		Expect(claimer.calls[0].Count).To(Equal(int64(10)))
	})

	It("dead-letters messages that cannot be parsed", func() {
		claimer.pages = []claimPage{
			{messages: []redis.XMessage{{ID: "3-0", Values: map[string]any{"task_type": "announce"}}}, next: "0-0"},
		}

		claimed, err := r.ReclaimOnce(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(claimed).To(Equal(1))
		Expect(handled).To(BeEmpty())
		Expect(consumer.dlq).To(HaveKeyWithValue("3-0", ContainSubstring("missing event_name")))
	})

	It("returns claim errors", func() {
		claimer.pages = []claimPage{{err: errors.New("NOGROUP")}}

		_, err := r.ReclaimOnce(ctx)
		Expect(err).To(MatchError(ContainSubstring("xautoclaim")))
	})
})
