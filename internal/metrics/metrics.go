// Package metrics declares the Prometheus collectors of the course aggregation layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheRequests counts cache outcomes per cache name (list, detail) and outcome tag.
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hrdnet",
			Name:      "cache_requests_total",
			Help:      "Course cache lookups by outcome.",
		},
		[]string{"cache", "outcome"},
	)

	// UpstreamDuration observes the latency of registry calls.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hrdnet",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of course registry requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
		},
		[]string{"endpoint", "result"},
	)

	// ResolverPages counts list pages scanned while resolving institution ids.
	ResolverPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hrdnet",
			Name:      "resolver_pages_total",
			Help:      "List pages fetched by the institution resolver.",
		},
	)
)
