package domain_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/domain"
)

type unregisteredEvent struct {
	domain.BaseEvent
}

var _ = Describe("Event registry", func() {
	DescribeTable("EventName",
		func(event domain.Event, expected string) {
			name, err := domain.EventName(event)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal(expected))
		},
		Entry(nil, domain.ShopOrderPaidEvent{}, "shop-order-paid"),
		Entry(nil, domain.ShopOrderCanceledEvent{}, "shop-order-canceled"),
		Entry(nil, domain.TicketCheckedInEvent{}, "ticket-checked-in"),
		Entry(nil, domain.TicketsSoldEvent{}, "tickets-sold"),
		Entry(nil, domain.UserAccountSuspendedEvent{}, "user-account-suspended"),
		Entry(nil, domain.BoardTopicMovedEvent{}, "board-topic-moved"),
		Entry(nil, domain.UserBadgeAwardedEvent{}, "user-badge-awarded"),
	)

	It("fails loudly for unregistered event types", func() {
		_, err := domain.EventName(unregisteredEvent{})
		Expect(err).To(MatchError(domain.ErrUnregisteredEvent))
	})

	It("does not register pointer types", func() {
		_, err := domain.EventName(&domain.ShopOrderPaidEvent{})
		Expect(err).To(MatchError(domain.ErrUnregisteredEvent))
	})

	It("lists every registered name", func() {
		names := domain.EventNames()
		Expect(names).To(HaveLen(34))
		Expect(names).To(ContainElements("user-logged-in", "shop-order-placed", "user-screen-name-changed"))
		Expect(domain.IsRegisteredName("tickets-sold")).To(BeTrue())
		Expect(domain.IsRegisteredName("tourney-started")).To(BeFalse())
	})

	It("decodes a serialized event back to its type", func() {
		original := domain.ShopOrderPaidEvent{
			BaseEvent:     domain.NewBaseEvent(time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC), &domain.EventUser{ID: 9}),
			ShopID:        "lanparty",
			OrderID:       77,
			OrderNumber:   "LP-24-B00042",
			PaymentMethod: "cash",
			Orderer:       domain.EventUser{ID: 1001},
		}
		payload, err := json.Marshal(original)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := domain.DecodeEvent("shop-order-paid", payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(original))
	})

	It("decodes flattened board events", func() {
		payload := []byte(`{"board_id":"main","topic_id":"t1","topic_title":"Hello","url":"https://example.com/t1","topic_creator":{"id":3},"moderator":{"id":9}}`)

		decoded, err := domain.DecodeEvent("board-topic-locked", payload)
		Expect(err).NotTo(HaveOccurred())

		event, ok := decoded.(domain.BoardTopicLockedEvent)
		Expect(ok).To(BeTrue())
		Expect(event.BoardID).To(Equal("main"))
		Expect(event.Moderator.ID).To(Equal(int64(9)))
		Expect(event.SelectorAttributes()).To(Equal(map[string]string{"board_id": "main"}))
	})

	It("rejects unknown names when decoding", func() {
		_, err := domain.DecodeEvent("tourney-started", []byte(`{}`))
		Expect(err).To(MatchError(domain.ErrUnregisteredEvent))
	})
})
