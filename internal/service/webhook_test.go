package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/service"
	"github.com/The0mikkel/byceps/internal/store"
)

var _ = Describe("WebhookService", func() {
	var (
		ctx       context.Context
		mockStore *mockWebhookStore
		caller    *mockCaller
		svc       service.WebhookService
	)

	validWebhook := func() model.OutgoingWebhook {
		return model.OutgoingWebhook{
			Format:         model.WebhookFormatDiscord,
			URL:            "https://discord.example/api/webhooks/1",
			EventSelectors: map[string]model.EventSelector{"shop-order-paid": nil},
			Enabled:        true,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		mockStore = &mockWebhookStore{}
		caller = &mockCaller{}
		svc = service.NewWebhookService(mockStore, caller)
	})

	Describe("Create", func() {
		It("assigns an ID and timestamps", func() {
			var captured model.OutgoingWebhook
			mockStore.createFn = func(_ context.Context, w model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
				captured = w
				return &w, nil
			}

			created, err := svc.Create(ctx, validWebhook())
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeZero())
			Expect(captured.CreatedAt).NotTo(BeZero())
			Expect(captured.UpdatedAt).To(Equal(captured.CreatedAt))
		})

		DescribeTable("validation",
			func(mutate func(*model.OutgoingWebhook), message string) {
				webhook := validWebhook()
				mutate(&webhook)

				_, err := svc.Create(ctx, webhook)
				Expect(errors.Is(err, service.ErrInvalidWebhook)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring(message))
			},
			Entry("missing url", func(w *model.OutgoingWebhook) { w.URL = "" }, "url is required"),
			Entry("relative url", func(w *model.OutgoingWebhook) { w.URL = "/hooks/1" }, "absolute"),
			Entry("unsupported scheme", func(w *model.OutgoingWebhook) { w.URL = "ftp://example.com/x" }, "absolute"),
			Entry("unknown format", func(w *model.OutgoingWebhook) { w.Format = "slack" }, "unknown format"),
			Entry("unknown event", func(w *model.OutgoingWebhook) {
				w.EventSelectors["tourney-started"] = nil
			}, "unknown event"),
		)
	})

	Describe("Update", func() {
		It("keeps the creation time", func() {
			existing := validWebhook()
			existing.ID = 7
			mockStore.getByIDFn = func(_ context.Context, _ int64) (*model.OutgoingWebhook, error) {
				return &existing, nil
			}

			changed := validWebhook()
			changed.ID = 7
			changed.Enabled = false
			updated, err := svc.Update(ctx, changed)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.CreatedAt).To(Equal(existing.CreatedAt))
			Expect(updated.Enabled).To(BeFalse())
		})

		It("passes not found through", func() {
			webhook := validWebhook()
			webhook.ID = 8

			_, err := svc.Update(ctx, webhook)
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("SendTest", func() {
		BeforeEach(func() {
			mockStore.getByIDFn = func(_ context.Context, id int64) (*model.OutgoingWebhook, error) {
				w := validWebhook()
				w.ID = id
				return &w, nil
			}
		})

		It("reports a successful delivery", func() {
			result, err := svc.SendTest(ctx, 1, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Delivered).To(BeTrue())
			Expect(caller.texts).To(Equal([]string{"Test announcement"}))
		})

		It("reports the status of a rejected delivery", func() {
			caller.callFn = func(_ context.Context, _ model.OutgoingWebhook, _ string) error {
				return &announce.WebhookError{Format: "Discord", StatusCode: 401}
			}

			result, err := svc.SendTest(ctx, 1, "ping")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Delivered).To(BeFalse())
			Expect(result.StatusCode).To(Equal(401))
			Expect(result.Error).To(ContainSubstring("unexpected status code 401"))
		})
	})
})
