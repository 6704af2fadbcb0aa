// README: Prometheus-backed metrics (§6.4) — request counts, latency
// histograms, cache hit rate. Wired because a real component can exercise
// it (`internal/searchapi`'s request path), not carried as a stub.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters and histograms the search entry point and
// cache layer update on every call.
type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	ProviderCalls  *prometheus.CounterVec
	FallbackDepth  prometheus.Histogram
}

// New registers and returns a fresh Metrics set against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ark_search_requests_total",
			Help: "Total search requests, labeled by intent kind.",
		}, []string{"intent_kind"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ark_search_request_duration_seconds",
			Help:    "End-to-end search request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"intent_kind"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ark_cache_hits_total",
			Help: "Cache hits, labeled by cache name (provider/ranked).",
		}, []string{"cache"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ark_cache_misses_total",
			Help: "Cache misses, labeled by cache name (provider/ranked).",
		}, []string{"cache"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ark_provider_calls_total",
			Help: "Provider calls, labeled by provider name and outcome.",
		}, []string{"provider", "outcome"}),
		FallbackDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ark_fallback_attempts",
			Help:    "Number of fallback strategies attempted before settling.",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7},
		}),
	}
	reg.MustRegister(m.Requests, m.RequestLatency, m.CacheHits, m.CacheMisses, m.ProviderCalls, m.FallbackDepth)
	return m
}

// CacheHitRate returns hits / (hits + misses) for the counts passed in, 0
// when there is no traffic yet.
func CacheHitRate(hits, misses float64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return hits / total
}
