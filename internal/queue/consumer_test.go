package queue_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/The0mikkel/byceps/internal/queue"
)

type fakeStreamClient struct {
	streams []redis.XStream
	txErr   error
	txCalls int
}

func (f *fakeStreamClient) XGroupCreateMkStream(ctx context.Context, _, _, _ string) *redis.StatusCmd {
	return redis.NewStatusCmd(ctx)
}

func (f *fakeStreamClient) XReadGroup(ctx context.Context, _ *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	cmd := redis.NewXStreamSliceCmd(ctx)
	cmd.SetVal(f.streams)
	return cmd
}

func (f *fakeStreamClient) XAck(ctx context.Context, _, _ string, _ ...string) *redis.IntCmd {
	return redis.NewIntCmd(ctx)
}

func (f *fakeStreamClient) TxPipelined(context.Context, func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	f.txCalls++
	return nil, f.txErr
}

var _ = Describe("RedisConsumer", func() {
	var (
		ctx      context.Context
		client   *fakeStreamClient
		consumer *queue.RedisConsumer
		logs     *bytes.Buffer
		previous *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &fakeStreamClient{
			streams: []redis.XStream{{
				Stream: "byceps_announcements",
				Messages: []redis.XMessage{
					{ID: "1-0", Values: map[string]any{"task_type": "announce"}},
				},
			}},
		}

		var err error
		consumer, err = queue.NewRedisConsumer(client, queue.ConsumerConfig{
			Stream:    "byceps_announcements",
			Group:     "byceps_announcers",
			Consumer:  "worker",
			DLQStream: "byceps_announcements_dlq",
		})
		Expect(err).NotTo(HaveOccurred())

		logs = &bytes.Buffer{}
		previous = slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(logs, nil)))
	})

	AfterEach(func() {
		slog.SetDefault(previous)
	})

	It("dead-letters messages that cannot be parsed", func() {
		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(BeEmpty())
		Expect(client.txCalls).To(Equal(1))
		Expect(logs.String()).To(ContainSubstring("message sent to DLQ"))
	})

	It("logs when dead-lettering fails", func() {
		client.txErr = errors.New("redis: connection refused")

		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(BeEmpty())
		Expect(logs.String()).To(ContainSubstring("failed to dead-letter unparsable message"))
		Expect(logs.String()).To(ContainSubstring("redis: connection refused"))
		Expect(logs.String()).To(ContainSubstring("raw_message_id=1-0"))
	})
})
