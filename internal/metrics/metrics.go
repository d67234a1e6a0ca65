package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chartview_fetch_total",
		Help: "Market data fetches by outcome (ok, no_data, error)",
	}, []string{"outcome"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chartview_cache_hits_total",
		Help: "Market data cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chartview_cache_misses_total",
		Help: "Market data cache misses",
	})

	pageAssemblySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chartview_page_assembly_seconds",
		Help:    "Time spent assembling one page of chart bundles",
		Buckets: prometheus.DefBuckets,
	})
)

// FetchOutcome records one market-data fetch result.
func FetchOutcome(outcome string) {
	fetchTotal.WithLabelValues(outcome).Inc()
}

// CacheHit records one market-data cache hit.
func CacheHit() {
	cacheHits.Inc()
}

// CacheMiss records one market-data cache miss.
func CacheMiss() {
	cacheMisses.Inc()
}

// ObservePageAssembly records the wall time of one page assembly.
func ObservePageAssembly(d time.Duration) {
	pageAssemblySeconds.Observe(d.Seconds())
}
