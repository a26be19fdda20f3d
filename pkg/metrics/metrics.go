package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TaskOperationDuration tracks task query and mutation latency.
	TaskOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_operation_duration_seconds",
			Help:    "Task operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "outcome"},
	)

	// HTTPRequestDuration tracks request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	// TaskEventsTotal counts event deliveries by result: published, buffered, dropped.
	TaskEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_events_total",
			Help: "Total number of task events by delivery result",
		},
		[]string{"result"},
	)

	// EventBufferSize reports items waiting in the event outbox.
	EventBufferSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "task_event_buffer_size",
			Help: "Number of task events waiting in the outbox",
		},
	)
)

func ObserveTaskOperation(operation, outcome string, duration time.Duration) {
	TaskOperationDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementTaskEvent(result string) {
	TaskEventsTotal.WithLabelValues(result).Inc()
}

func SetEventBufferSize(size int) {
	EventBufferSize.Set(float64(size))
}
