package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics,
// so handlers and the acquisition layer take metrics by dependency injection
// rather than touching globals.
type MetricsRegistry interface {
	// HTTP request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Search metrics
	IncrementSearches(depth, outcome string)
	AddFragments(backend string, n int)
	IncrementFragmentDiscards()
	IncrementBlocked()

	// Advertiser estimate cache metrics
	IncrementEstimateCacheLookup(result string)
}

// PrometheusRegistry implements MetricsRegistry using the package-level
// Prometheus collectors.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry.
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementSearches(depth, outcome string) {
	SearchCount.WithLabelValues(depth, outcome).Inc()
}

func (r *PrometheusRegistry) AddFragments(backend string, n int) {
	FragmentCount.WithLabelValues(backend).Add(float64(n))
}

func (r *PrometheusRegistry) IncrementFragmentDiscards() {
	FragmentDiscards.Inc()
}

func (r *PrometheusRegistry) IncrementBlocked() {
	BlockedCount.Inc()
}

func (r *PrometheusRegistry) IncrementEstimateCacheLookup(result string) {
	EstimateCacheLookups.WithLabelValues(result).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing.
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry.
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementSearches(depth, outcome string)                              {}
func (r *NoOpRegistry) AddFragments(backend string, n int)                                   {}
func (r *NoOpRegistry) IncrementFragmentDiscards()                                           {}
func (r *NoOpRegistry) IncrementBlocked()                                                    {}
func (r *NoOpRegistry) IncrementEstimateCacheLookup(result string)                           {}
