// Package observability provides metrics and tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkstream_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// PostStoreOps counts post store operations by operation and outcome.
	PostStoreOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkstream_post_store_operations_total",
		Help: "Total number of post store operations by operation and status",
	}, []string{"operation", "status"})

	// PostStoreLatency records post store operation latency.
	PostStoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkstream_post_store_operation_duration_seconds",
		Help:    "Post store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// PostStoreCorruptSkips counts records skipped during listing because
	// they could not be read or decoded.
	PostStoreCorruptSkips = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkstream_post_store_corrupt_records_skipped_total",
		Help: "Total number of unreadable post records skipped during listing",
	})
)

// ObserveStoreOp records the outcome and latency of a post store operation.
func ObserveStoreOp(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PostStoreOps.WithLabelValues(operation, status).Inc()
	PostStoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
