// Package metrics provides Prometheus metrics for gamelib.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups tracks cache reads by namespace and result (hit, miss, error)
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamelib",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of response cache lookups by result",
		},
		[]string{"namespace", "result"},
	)

	// CacheWriteErrors tracks swallowed cache write failures
	CacheWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamelib",
			Subsystem: "cache",
			Name:      "write_errors_total",
			Help:      "Total number of cache writes that failed and were dropped",
		},
		[]string{"namespace"},
	)

	// UpstreamRequests tracks outbound provider requests
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamelib",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of outbound provider requests",
		},
		[]string{"provider", "status_code"},
	)

	// UpstreamRequestDuration tracks outbound provider request duration
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gamelib",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound provider requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// ImportItems tracks per-item import outcomes (imported, updated, skipped, failed)
	ImportItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamelib",
			Subsystem: "import",
			Name:      "items_total",
			Help:      "Total number of import items by outcome",
		},
		[]string{"outcome"},
	)

	// ImportRuns tracks import invocations by result (completed, failed, canceled)
	ImportRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamelib",
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Total number of import runs by result",
		},
		[]string{"result"},
	)

	// EnrichmentWait tracks time spent waiting on the enrichment throttle
	EnrichmentWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gamelib",
			Subsystem: "import",
			Name:      "enrichment_wait_seconds",
			Help:      "Time spent waiting for the enrichment throttle in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2},
		},
	)
)
