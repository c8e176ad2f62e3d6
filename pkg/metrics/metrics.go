package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lifecycle_sweep_duration_seconds",
			Help:    "Duration of a full lifecycle sweep in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	TaskStatusResolvedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_status_resolved_count",
			Help: "Total number of task status resolutions persisted",
		},
		[]string{"status"},
	)

	LedgerMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_update_ledger_mutation_count",
			Help: "Total number of daily update records created/deleted by reconciliation",
		},
		[]string{"op"}, // op: create, delete
	)

	EventPublishedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_event_published_count",
			Help: "Total number of lifecycle events published",
		},
		[]string{"kind", "status"}, // status: success, failed
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveSweep records the duration of one lifecycle sweep.
func ObserveSweep(duration time.Duration) {
	SweepDuration.Observe(duration.Seconds())
}

// IncrementStatusResolved increments the resolution counter for a status.
func IncrementStatusResolved(status string) {
	TaskStatusResolvedCount.WithLabelValues(status).Inc()
}

// AddLedgerMutations adds to the ledger mutation counter.
func AddLedgerMutations(op string, n int) {
	if n > 0 {
		LedgerMutationCount.WithLabelValues(op).Add(float64(n))
	}
}

// IncrementEventPublished increments the published event counter.
func IncrementEventPublished(kind, status string) {
	EventPublishedCount.WithLabelValues(kind, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
