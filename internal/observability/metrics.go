package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adscout_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// searches by depth and outcome (ok, blocked, failed, empty)
	SearchCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_searches_total",
			Help: "Total ad-library searches by depth and outcome",
		},
		[]string{"depth", "outcome"},
	)

	// raw fragments returned by the acquisition layer
	FragmentCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_fragments_total",
			Help: "Fragments received from the acquisition backend",
		},
		[]string{"backend"},
	)

	// fragments skipped because nothing usable could be extracted
	FragmentDiscards = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adscout_fragments_discarded_total",
			Help: "Fragments discarded as fundamentally empty",
		},
	)

	// anti-automation challenges detected by the acquisition layer
	BlockedCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adscout_blocked_total",
			Help: "Searches aborted by an anti-automation challenge",
		},
	)

	// advertiser active-ads estimate cache hits/misses
	EstimateCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_estimate_cache_lookups_total",
			Help: "Advertiser estimate cache lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		SearchCount,
		FragmentCount,
		FragmentDiscards,
		BlockedCount,
		EstimateCacheLookups,
	)
}
