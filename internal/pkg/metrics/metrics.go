// Package metrics holds the Prometheus collectors for the aggregation
// pipeline. Register once at startup with MustRegisterMetrics and scrape via
// the /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PriceCacheHits counts asset ids served straight from the price cache.
	PriceCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_cache_hits_total",
		Help: "Number of asset price lookups served from the cache.",
	})

	// PriceCacheMisses counts asset ids that had to go upstream.
	PriceCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_cache_misses_total",
		Help: "Number of asset price lookups that missed the cache.",
	})

	// PricingAPICalls counts batched requests to the external pricing API.
	PricingAPICalls = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_api_calls_total",
		Help: "Number of batched requests issued to the pricing API.",
	})

	// PricingAPIFailures counts pricing API requests that failed entirely.
	PricingAPIFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_api_failures_total",
		Help: "Number of pricing API requests that failed.",
	})

	// BalanceFetchFailures counts wallet balance operations that ended in a
	// portfolio warning.
	BalanceFetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "balance_fetch_failures_total",
		Help: "Number of balance fetch operations converted into warnings.",
	})

	// TokenQueryFailures counts absorbed per-token sub-query failures inside
	// connectors.
	TokenQueryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "token_query_failures_total",
		Help: "Number of per-token balance sub-queries that failed and were skipped.",
	})

	// AggregationDuration observes end-to-end portfolio aggregation latency.
	AggregationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "portfolio_aggregation_duration_seconds",
		Help:    "Time spent building one aggregated portfolio.",
		Buckets: prometheus.DefBuckets,
	})
)

// MustRegisterMetrics registers all collectors with the default registry.
// Panics on duplicate registration, which only happens on a wiring bug.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		PriceCacheHits,
		PriceCacheMisses,
		PricingAPICalls,
		PricingAPIFailures,
		BalanceFetchFailures,
		TokenQueryFailures,
		AggregationDuration,
	)
}
