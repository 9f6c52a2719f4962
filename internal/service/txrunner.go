package service

import (
	"context"

	"github.com/The0mikkel/byceps/core/db"
	"github.com/The0mikkel/byceps/internal/store"
)

// StoreProvider exposes only the stores needed by order operations.
type StoreProvider interface {
	Orders() store.OrderStore
	OrderLog() store.OrderLogStore
	Payments() store.PaymentStore
	OrderActions() store.OrderActionStore
	Tickets() store.TicketStore
	Users() store.UserStore
}

// Savepointer is implemented by transaction-bound StoreProviders. fn runs
// in a nested transaction whose failure does not abort the outer one.
type Savepointer interface {
	Savepoint(ctx context.Context, fn func(stores StoreProvider) error) error
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(tx *db.Tx) error {
		return fn(newTxStores(tx))
	})
}

type txStores struct {
	*store.Stores
	tx *db.Tx
}

func newTxStores(tx *db.Tx) *txStores {
	return &txStores{Stores: store.NewStores(tx.Queries), tx: tx}
}

func (s *txStores) Savepoint(ctx context.Context, fn func(stores StoreProvider) error) error {
	return s.tx.Savepoint(ctx, func(nested *db.Tx) error {
		return fn(newTxStores(nested))
	})
}

// savepoint isolates fn when stores support it. Without savepoint support
// fn runs directly in the surrounding transaction.
func savepoint(ctx context.Context, stores StoreProvider, fn func(stores StoreProvider) error) error {
	if sp, ok := stores.(Savepointer); ok {
		return sp.Savepoint(ctx, fn)
	}
	return fn(stores)
}
