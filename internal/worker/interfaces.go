package worker

import (
	"context"
	"time"

	"github.com/The0mikkel/byceps/internal/announce"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Announcer abstracts the webhook fan-out for testability.
type Announcer interface {
	Announce(ctx context.Context, event domain.Event) (announce.Report, error)
}

// OverdueCounter is the part of the order store the overdue report reads.
type OverdueCounter interface {
	CountOpenCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}
