package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/worker"
)

type fakeOverdueCounter struct {
	count  int64
	err    error
	before []time.Time
}

func (f *fakeOverdueCounter) CountOpenCreatedBefore(_ context.Context, before time.Time) (int64, error) {
	f.before = append(f.before, before)
	return f.count, f.err
}

var _ = Describe("OverdueReporter", func() {
	var (
		ctx     context.Context
		counter *fakeOverdueCounter
	)

	BeforeEach(func() {
		ctx = context.Background()
		counter = &fakeOverdueCounter{count: 4}
	})

	It("counts orders created before the overdue threshold", func() {
		reporter := worker.NewOverdueReporter(counter, "@every 1h")

		count, err := reporter.RunOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(4)))

		Expect(counter.before).To(HaveLen(1))
		expected := time.Now().UTC().Add(-domain.OverdueThreshold)
		Expect(counter.before[0]).To(BeTemporally("~", expected, 5*time.Second))
	})

	It("wraps store errors", func() {
		counter.err = errors.New("db down")
		reporter := worker.NewOverdueReporter(counter, "@every 1h")

		_, err := reporter.RunOnce(ctx)
		Expect(err).To(MatchError(ContainSubstring("counting overdue orders")))
	})

	It("rejects an invalid schedule", func() {
		reporter := worker.NewOverdueReporter(counter, "every now and then")
		Expect(reporter.Start(ctx)).NotTo(Succeed())
	})

	It("reports once on start", func() {
		reporter := worker.NewOverdueReporter(counter, "@every 1h")
		Expect(reporter.Start(ctx)).To(Succeed())
		reporter.Stop()

		Expect(counter.before).To(HaveLen(1))
	})
})
