// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khabri_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// InteractionsRecorded counts recorded reader interactions by kind.
	InteractionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khabri_interactions_recorded_total",
		Help: "Total number of recorded reader interactions by kind",
	}, []string{"kind"})

	// PostViews counts single-post lookups, which each increment the view counter.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khabri_post_views_total",
		Help: "Total number of single-post lookups",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "khabri_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AdminEventSubscribers is the gauge of connected admin event feed clients.
	AdminEventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "khabri_admin_event_subscribers",
		Help: "Number of connected admin event feed WebSocket clients",
	})
)

// InitHTTPMetrics creates the Prometheus middleware for per-route HTTP metrics.
func InitHTTPMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
