package store

import (
	"github.com/The0mikkel/byceps/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Orders() OrderStore {
	return newOrderStore(s.queries)
}

func (s *Stores) OrderLog() OrderLogStore {
	return newOrderLogStore(s.queries)
}

func (s *Stores) Payments() PaymentStore {
	return newPaymentStore(s.queries)
}

func (s *Stores) OrderActions() OrderActionStore {
	return newOrderActionStore(s.queries)
}

func (s *Stores) Tickets() TicketStore {
	return newTicketStore(s.queries)
}

func (s *Stores) Webhooks() WebhookStore {
	return newWebhookStore(s.queries)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}
