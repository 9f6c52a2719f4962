package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/The0mikkel/byceps/internal/domain"
)

// Subscriber receives published domain events.
type Subscriber interface {
	Handle(ctx context.Context, event domain.Event) error
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, event domain.Event) error

func (f SubscriberFunc) Handle(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

// Publisher is what services depend on to emit events after committing.
type Publisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// Bus dispatches events synchronously to subscribers in registration order.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	logger      *slog.Logger
}

func New() *Bus {
	return &Bus{logger: slog.Default().With("component", "byceps.eventbus")}
}

func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// Publish hands every event to every subscriber. A failing subscriber does
// not stop the others; all errors are joined and returned.
func (b *Bus) Publish(ctx context.Context, events ...domain.Event) error {
	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.RUnlock()

	var errs []error
	for _, event := range events {
		for _, s := range subscribers {
			if err := s.Handle(ctx, event); err != nil {
				b.logger.ErrorContext(ctx, "event subscriber failed", "error", err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
