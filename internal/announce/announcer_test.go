package announce_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/model"
)

type fakeWebhookSource struct {
	webhooks []model.OutgoingWebhook
	err      error
	asked    []string
}

func (f *fakeWebhookSource) ListEnabledForEvent(_ context.Context, eventName string) ([]model.OutgoingWebhook, error) {
	f.asked = append(f.asked, eventName)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.OutgoingWebhook
	for _, w := range f.webhooks {
		if w.Enabled && w.SelectsEvent(eventName) {
			out = append(out, w)
		}
	}
	return out, nil
}

type call struct {
	WebhookID int64
	Text      string
}

type recordingCaller struct {
	mu      sync.Mutex
	calls   []call
	failFor map[int64]error
}

func (c *recordingCaller) CallWebhook(_ context.Context, webhook model.OutgoingWebhook, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call{WebhookID: webhook.ID, Text: text})
	return c.failFor[webhook.ID]
}

type unregisteredEvent struct {
	domain.BaseEvent
}

var _ = Describe("Announcer", func() {
	var (
		ctx       context.Context
		source    *fakeWebhookSource
		caller    *recordingCaller
		announcer *announce.Announcer
		event     domain.BoardPostingCreatedEvent
	)

	newWebhook := func(id int64, channel string, selector model.EventSelector) model.OutgoingWebhook {
		return model.OutgoingWebhook{
			ID:             id,
			Format:         model.WebhookFormatWeitersager,
			URL:            "http://irc.example/",
			ExtraFields:    map[string]any{"channel": channel},
			EventSelectors: map[string]model.EventSelector{"board-posting-created": selector},
			Enabled:        true,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		source = &fakeWebhookSource{}
		caller = &recordingCaller{failFor: map[int64]error{}}
		announcer = announce.NewAnnouncer(source, caller)
		event = domain.BoardPostingCreatedEvent{
			BaseEvent: domain.NewBaseEvent(time.Now(), nil),
			BoardPosting: domain.BoardPosting{
				BoardID:        "main",
				TopicTitle:     "Sleeping spots",
				URL:            "https://example.com/board/postings/9",
				PostingCreator: domain.EventUser{ID: 3, ScreenName: strPtr("Sleepy")},
			},
		}
	})

	It("delivers in channel order", func() {
		source.webhooks = []model.OutgoingWebhook{
			newWebhook(1, "#zeta", nil),
			newWebhook(2, "#alpha", nil),
			newWebhook(3, "#mid", nil),
		}

		report, err := announcer.Announce(ctx, event)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.EventName).To(Equal("board-posting-created"))
		Expect(report.Delivered).To(Equal(3))
		Expect(source.asked).To(Equal([]string{"board-posting-created"}))

		Expect(caller.calls).To(HaveLen(3))
		Expect(caller.calls[0].WebhookID).To(Equal(int64(2)))
		Expect(caller.calls[1].WebhookID).To(Equal(int64(3)))
		Expect(caller.calls[2].WebhookID).To(Equal(int64(1)))
		Expect(caller.calls[0].Text).To(Equal(`Sleepy replied in topic "Sleeping spots": https://example.com/board/postings/9`))
	})

	It("filters by board selector", func() {
		source.webhooks = []model.OutgoingWebhook{
			newWebhook(1, "#a", model.EventSelector{"board_id": {"main"}}),
			newWebhook(2, "#b", model.EventSelector{"board_id": {"orga"}}),
		}

		report, err := announcer.Announce(ctx, event)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Delivered).To(Equal(1))
		Expect(report.Skipped).To(Equal(1))
		Expect(caller.calls).To(ConsistOf(HaveField("WebhookID", int64(1))))
	})

	It("keeps going after a failed delivery", func() {
		source.webhooks = []model.OutgoingWebhook{
			newWebhook(1, "#a", nil),
			newWebhook(2, "#b", nil),
		}
		caller.failFor[1] = &announce.WebhookError{Format: "Weitersager", StatusCode: 500}

		report, err := announcer.Announce(ctx, event)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Failed).To(Equal(1))
		Expect(report.Delivered).To(Equal(1))
		Expect(caller.calls).To(HaveLen(2))
	})

	It("does nothing without webhooks", func() {
		report, err := announcer.Announce(ctx, event)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Delivered).To(BeZero())
		Expect(caller.calls).To(BeEmpty())
	})

	It("skips events without announcement text", func() {
		source.webhooks = []model.OutgoingWebhook{{
			ID:             1,
			Format:         model.WebhookFormatDiscord,
			EventSelectors: map[string]model.EventSelector{"user-logged-in": nil},
			Enabled:        true,
		}}

		report, err := announcer.Announce(ctx, domain.UserLoggedInEvent{BaseEvent: domain.NewBaseEvent(time.Now(), nil)})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Skipped).To(Equal(1))
		Expect(caller.calls).To(BeEmpty())
	})

	It("rejects unregistered event types", func() {
		_, err := announcer.Announce(ctx, unregisteredEvent{})
		Expect(errors.Is(err, domain.ErrUnregisteredEvent)).To(BeTrue())
		Expect(source.asked).To(BeEmpty())
	})

	It("surfaces webhook lookup failures", func() {
		source.err = errors.New("db down")

		err := announcer.Handle(ctx, event)
		Expect(err).To(MatchError(ContainSubstring("db down")))
	})
})
