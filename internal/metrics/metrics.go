// Package metrics defines the Prometheus collectors for the search pipeline.
// They register on the default registry; cmd/serve exposes them on an
// optional HTTP listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts tool invocations by outcome. Outcomes are
	// "success" or a failure classification such as "path_traversal".
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripgrep_mcp_searches_total",
		Help: "Search tool invocations by outcome.",
	}, []string{"outcome"})

	// SearchDuration observes wall-clock duration of the external ripgrep
	// invocation, successful searches only.
	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ripgrep_mcp_search_duration_seconds",
		Help:    "Wall-clock duration of successful searches.",
		Buckets: prometheus.DefBuckets,
	})
)
