package announce_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/model"
)

var _ = Describe("MatchesSelectors", func() {
	const eventName = "board-posting-created"

	webhookWith := func(selectors map[string]model.EventSelector) model.OutgoingWebhook {
		return model.OutgoingWebhook{EventSelectors: selectors}
	}

	It("matches any value when the event maps to no rule", func() {
		webhook := webhookWith(map[string]model.EventSelector{eventName: nil})
		for _, value := range []string{"main", "orga", ""} {
			Expect(announce.MatchesSelectors(eventName, webhook, "board_id", value)).To(BeTrue())
		}
	})

	It("matches any value when the rule has no entry for the attribute", func() {
		webhook := webhookWith(map[string]model.EventSelector{eventName: {"channel_id": {"x"}}})
		Expect(announce.MatchesSelectors(eventName, webhook, "board_id", "main")).To(BeTrue())
	})

	It("matches allowed values only", func() {
		webhook := webhookWith(map[string]model.EventSelector{eventName: {"board_id": {"main", "orga"}}})
		Expect(announce.MatchesSelectors(eventName, webhook, "board_id", "orga")).To(BeTrue())
		Expect(announce.MatchesSelectors(eventName, webhook, "board_id", "offtopic")).To(BeFalse())
	})

	It("never matches when the event name is not selected", func() {
		webhook := webhookWith(map[string]model.EventSelector{"shop-order-paid": nil})
		Expect(announce.MatchesSelectors(eventName, webhook, "board_id", "main")).To(BeFalse())
		Expect(announce.MatchesSelectors(eventName, model.OutgoingWebhook{}, "board_id", "main")).To(BeFalse())
	})
})
