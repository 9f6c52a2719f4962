package announce_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/domain"
)

var _ = Describe("RenderText", func() {
	occurredAt := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	admin := &domain.EventUser{ID: 1, ScreenName: strPtr("Admin")}

	It("announces a badge awarded by an admin", func() {
		event := domain.UserBadgeAwardedEvent{
			BaseEvent:  domain.NewBaseEvent(occurredAt, admin),
			BadgeID:    "b1",
			BadgeLabel: "Glanzleistung",
			Awardee:    domain.EventUser{ID: 2, ScreenName: strPtr("PathFinder")},
		}

		text, ok := announce.RenderText(event)
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal(`Admin has awarded badge "Glanzleistung" to PathFinder.`))
	})

	It("announces a badge awarded without initiator", func() {
		event := domain.UserBadgeAwardedEvent{
			BaseEvent:  domain.NewBaseEvent(occurredAt, nil),
			BadgeLabel: "First Post!",
			Awardee:    domain.EventUser{ID: 3, ScreenName: strPtr("Erster")},
		}

		text, ok := announce.RenderText(event)
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal(`Someone has awarded badge "First Post!" to Erster.`))
	})

	DescribeTable("shop events",
		func(event domain.Event, expected string) {
			text, ok := announce.RenderText(event)
			Expect(ok).To(BeTrue())
			Expect(text).To(Equal(expected))
		},
		Entry("paid", domain.ShopOrderPaidEvent{
			BaseEvent:   domain.NewBaseEvent(occurredAt, admin),
			OrderNumber: "LP-24-B00042",
			Orderer:     domain.EventUser{ID: 5, ScreenName: strPtr("Gamer")},
		}, "Admin has marked order LP-24-B00042 by Gamer as paid."),
		Entry("canceled", domain.ShopOrderCanceledEvent{
			BaseEvent:   domain.NewBaseEvent(occurredAt, admin),
			OrderNumber: "LP-24-B00042",
			Orderer:     domain.EventUser{ID: 5, ScreenName: strPtr("Gamer")},
		}, "Admin has canceled order LP-24-B00042 by Gamer."),
		Entry("tickets sold", domain.TicketsSoldEvent{
			BaseEvent: domain.NewBaseEvent(occurredAt, admin),
			Owner:     domain.EventUser{ID: 5, ScreenName: strPtr("Gamer")},
			Quantity:  3,
		}, "Gamer has paid for 3 ticket(s)."),
	)

	It("announces a board topic move", func() {
		event := domain.BoardTopicMovedEvent{
			BaseEvent: domain.NewBaseEvent(occurredAt, admin),
			BoardTopic: domain.BoardTopic{
				BoardID:      "main",
				TopicTitle:   "Cable ties",
				URL:          "https://example.com/board/topics/1",
				TopicCreator: domain.EventUser{ID: 7, ScreenName: strPtr("Nerd")},
			},
			OldCategoryTitle: "General",
			NewCategoryTitle: "Hardware",
			Moderator:        *admin,
		}

		text, ok := announce.RenderText(event)
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal(`Admin has moved topic "Cable ties" by Nerd from "General" to "Hardware": https://example.com/board/topics/1`))
	})

	It("stays silent for logins", func() {
		_, ok := announce.RenderText(domain.UserLoggedInEvent{})
		Expect(ok).To(BeFalse())
	})
})
