package logger_test

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/common/logger"
)

var _ = Describe("LogFields", func() {
	It("merges newer values over older ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			OrderID:   logger.Ptr(int64(100)),
			Component: "byceps.service.order",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			ShopID:    logger.Ptr("lan-party-shop"),
			Component: "byceps.announce.announcer",
		})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.OrderID).To(Equal(int64(100)))
		Expect(*fields.ShopID).To(Equal("lan-party-shop"))
		Expect(fields.Component).To(Equal("byceps.announce.announcer"))
	})

	It("adds context fields to every record", func() {
		var buf bytes.Buffer
		log := slog.New(logger.NewTraceHandler(slog.NewTextHandler(&buf, nil)))

		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			WebhookID: logger.Ptr(int64(7)),
			EventName: logger.Ptr("shop-order-paid"),
		})
		log.InfoContext(ctx, "webhook called")

		Expect(buf.String()).To(ContainSubstring("webhook_id=7"))
		Expect(buf.String()).To(ContainSubstring("event_name=shop-order-paid"))
	})

	It("truncates long strings", func() {
		Expect(logger.Truncate("abcdef", 3)).To(Equal("abc..."))
		Expect(logger.Truncate("abc", 3)).To(Equal("abc"))
	})
})
