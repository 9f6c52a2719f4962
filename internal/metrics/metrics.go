package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "byceps"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of admin API requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of admin API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shop",
			Name:      "order_transitions_total",
			Help:      "Payment state transitions by resulting state and outcome.",
		},
		[]string{"payment_state", "outcome"},
	)

	overdueOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "shop",
			Name:      "overdue_orders",
			Help:      "Open orders past the payment threshold at the last report.",
		},
	)

	webhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "announce",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook calls by format and outcome.",
		},
		[]string{"format", "outcome"},
	)

	webhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "announce",
			Name:      "webhook_duration_seconds",
			Help:      "Duration of webhook calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"format"},
	)

	eventPublishes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shop",
			Name:      "event_publishes_total",
			Help:      "Post-commit order event publishes by outcome.",
		},
		[]string{"outcome"},
	)

	queueMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "messages_total",
			Help:      "Announcement queue messages by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		orderTransitions,
		overdueOrders,
		webhookDeliveries,
		webhookDuration,
		eventPublishes,
		queueMessages,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request count and duration per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if route == "/metrics" {
			return
		}

		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordOrderTransition counts a payment state transition attempt.
func RecordOrderTransition(paymentState string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	orderTransitions.WithLabelValues(paymentState, outcome).Inc()
}

// RecordEventPublish counts one post-commit publish of order events.
func RecordEventPublish(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	eventPublishes.WithLabelValues(outcome).Inc()
}

// SetOverdueOrders publishes the number of overdue open orders.
func SetOverdueOrders(n int64) {
	overdueOrders.Set(float64(n))
}

// RecordWebhookDelivery records the outcome of a single webhook call.
func RecordWebhookDelivery(format string, duration time.Duration, err error) {
	outcome := "delivered"
	if err != nil {
		outcome = "failed"
	}
	webhookDeliveries.WithLabelValues(format, outcome).Inc()
	webhookDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordQueueMessage counts a processed announcement message ("acked", "retried", "dead_lettered").
func RecordQueueMessage(outcome string) {
	queueMessages.WithLabelValues(outcome).Inc()
}
