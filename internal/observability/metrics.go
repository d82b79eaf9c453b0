package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// PostOperations counts post service operations by outcome.
	PostOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_post_operations_total",
		Help: "Total number of post operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// StoreQueryLatency records store call latency by backend and operation.
	StoreQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postboard_store_query_latency_seconds",
		Help:    "Store query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// EventPublishErrors counts post events that could not be delivered.
	EventPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_event_publish_errors_total",
		Help: "Total number of post events that failed to publish",
	}, []string{"driver", "event_type"})
)

// RecordOperation increments PostOperations for operation.
func RecordOperation(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	PostOperations.WithLabelValues(operation, outcome).Inc()
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(backend, operation string) func() {
	start := time.Now()
	return func() {
		StoreQueryLatency.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	}
}
