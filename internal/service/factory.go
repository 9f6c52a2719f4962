package service

import (
	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/eventbus"
	"github.com/The0mikkel/byceps/internal/store"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	publisher eventbus.Publisher
	caller    announce.Caller
}

func NewServices(stores *store.Stores, txRunner TxRunner, publisher eventbus.Publisher, caller announce.Caller) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		publisher: publisher,
		caller:    caller,
	}
}

func (s *Services) Orders() OrderService {
	return NewOrderService(s.stores, s.txRunner, s.publisher, nil)
}

func (s *Services) Webhooks() WebhookService {
	return NewWebhookService(s.stores.Webhooks(), s.caller)
}
