package logger_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/The0mikkel/byceps/common/logger"
)

var _ = Describe("spans", func() {
	var recorder *tracetest.SpanRecorder

	BeforeEach(func() {
		previous := otel.GetTracerProvider()
		recorder = tracetest.NewSpanRecorder()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
		DeferCleanup(func() { otel.SetTracerProvider(previous) })
	})

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"

	It("continues a propagated trace", func() {
		sc := logger.StartSpanFromTraceID(context.Background(), traceID, "worker.announce")
		sc.End()

		Expect(sc.TraceID()).To(Equal(traceID))
		spans := recorder.Ended()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].SpanContext().TraceID().String()).To(Equal(traceID))
		Expect(spans[0].Parent().IsRemote()).To(BeTrue())
		Expect(spans[0].Links()).To(HaveLen(1))
	})

	DescribeTable("starts a fresh trace for unusable IDs",
		func(id string) {
			sc := logger.StartSpanFromTraceID(context.Background(), id, "worker.announce")
			sc.End()

			Expect(sc.TraceID()).NotTo(BeEmpty())
			Expect(sc.TraceID()).NotTo(Equal(traceID))
			Expect(recorder.Ended()[0].Links()).To(BeEmpty())
		},
		Entry("empty", ""),
		Entry("malformed", "not-a-trace-id"),
		Entry("all zeros", "00000000000000000000000000000000"),
	)

	It("marks spans with recorded errors as failed", func() {
		sc := logger.StartSpan(context.Background(), "announce.fan_out")
		sc.RecordError(errors.New("webhook lookup failed"))
		sc.RecordError(nil)
		sc.End()

		span := recorder.Ended()[0]
		Expect(span.Status().Code).To(Equal(codes.Error))
		Expect(span.Events()).To(HaveLen(1))
	})

	It("nests child spans under the context's span", func() {
		parent := logger.StartSpan(context.Background(), "parent")
		child := logger.StartSpan(parent.Context(), "child", trace.WithSpanKind(trace.SpanKindClient))
		child.End()
		parent.End()

		Expect(child.TraceID()).To(Equal(parent.TraceID()))
	})
})
