package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/model"
)

var _ = Describe("DecodeActionParameters", func() {
	It("decodes create_tickets parameters", func() {
		params, err := model.DecodeActionParameters(model.ProcedureCreateTickets, []byte(`{"category_id": 42}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(params).To(Equal(model.CreateTicketsParameters{CategoryID: 42}))
		Expect(params.Procedure()).To(Equal(model.ProcedureCreateTickets))
	})

	It("decodes create_ticket_bundles parameters", func() {
		params, err := model.DecodeActionParameters(model.ProcedureCreateTicketBundles, []byte(`{"category_id": 7, "ticket_quantity": 4}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(params).To(Equal(model.CreateTicketBundlesParameters{CategoryID: 7, TicketQuantity: 4}))
	})

	It("accepts empty parameters for revocations", func() {
		params, err := model.DecodeActionParameters(model.ProcedureRevokeTickets, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(params).To(Equal(model.RevokeTicketsParameters{}))

		params, err = model.DecodeActionParameters(model.ProcedureRevokeTicketBundles, []byte(`{}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(params).To(Equal(model.RevokeTicketBundlesParameters{}))
	})

	It("rejects a misspelled key by requiring the category", func() {
		_, err := model.DecodeActionParameters(model.ProcedureCreateTickets, []byte(`{"categroy_id": 42}`))
		Expect(err).To(MatchError(ContainSubstring("category_id is required")))
	})

	It("rejects bundles without a ticket quantity", func() {
		_, err := model.DecodeActionParameters(model.ProcedureCreateTicketBundles, []byte(`{"category_id": 7}`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown procedures", func() {
		_, err := model.DecodeActionParameters(model.Procedure("award_badge"), nil)
		Expect(err).To(MatchError(model.ErrUnknownProcedure))
	})
})

var _ = Describe("ActionParametersSchemas", func() {
	It("describes every procedure", func() {
		schemas := model.ActionParametersSchemas()
		Expect(schemas).To(HaveLen(len(model.Procedures)))

		bundles := schemas[model.ProcedureCreateTicketBundles]
		Expect(bundles.Required).To(ConsistOf("category_id", "ticket_quantity"))
	})
})

var _ = Describe("EventSelector", func() {
	DescribeTable("Allows",
		func(selector model.EventSelector, value string, expected bool) {
			Expect(selector.Allows("board_id", value)).To(Equal(expected))
		},
		Entry("nil selector", model.EventSelector(nil), "any", true),
		Entry("no rule for the attribute", model.EventSelector{"channel_id": {"x"}}, "any", true),
		Entry("value allowed", model.EventSelector{"board_id": {"a", "b"}}, "b", true),
		Entry("value not allowed", model.EventSelector{"board_id": {"a", "b"}}, "c", false),
		Entry("empty allowed set", model.EventSelector{"board_id": {}}, "a", false),
	)
})

var _ = Describe("OutgoingWebhook", func() {
	It("reads the channel extra field", func() {
		w := model.OutgoingWebhook{ExtraFields: map[string]any{"channel": "#lobby"}}
		Expect(w.Channel()).To(Equal("#lobby"))
		Expect(model.OutgoingWebhook{}.Channel()).To(BeEmpty())
	})
})
