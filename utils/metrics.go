package utils

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration is labelled by route template, not raw path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	AICallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_call_latency_ms",
			Help:    "Generative AI call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"operation", "status"},
	)

	MilestoneReleaseCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milestone_release_count",
			Help: "Total number of milestone release attempts",
		},
		[]string{"result"}, // released, not_pending, not_found, no_method
	)

	PaymentMethodBoundCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_method_bound_count",
			Help: "Total number of payment methods bound",
		},
		[]string{"kind"},
	)
)

// RecordAICall records the latency of a generator call.
func RecordAICall(operation, status string, started time.Time) {
	AICallLatency.WithLabelValues(operation, status).Observe(float64(time.Since(started).Milliseconds()))
}

// RecordMilestoneRelease counts a release attempt by outcome.
func RecordMilestoneRelease(result string) {
	MilestoneReleaseCount.WithLabelValues(result).Inc()
}

// RecordPaymentMethodBound counts a newly bound method.
func RecordPaymentMethodBound(kind string) {
	PaymentMethodBoundCount.WithLabelValues(kind).Inc()
}
