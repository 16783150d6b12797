// Package observability provides Prometheus metrics and OpenTelemetry tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StatsDeltasApplied counts aggregate deltas applied, by entity and direction.
	StatsDeltasApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_stats_deltas_applied_total",
		Help: "Total number of profile stats deltas applied",
	}, []string{"entity", "direction"})

	// StatsDeltaFailures counts aggregate deltas that failed after the entity
	// write succeeded. The delta is best-effort; a failure here means the
	// aggregate may have drifted from the underlying records.
	StatsDeltaFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_stats_delta_failures_total",
		Help: "Total number of profile stats deltas that failed to apply",
	}, []string{"entity"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheResults counts cache lookups by key prefix and outcome (hit/miss).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_cache_results_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"prefix", "outcome"})

	// CompletionEventsPublished counts completion events published to the broker.
	CompletionEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_completion_events_published_total",
		Help: "Total number of completion events published",
	}, []string{"entity", "outcome"})
)
