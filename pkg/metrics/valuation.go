package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ValuationMetrics records cache behavior and search latency for
// component valuations, plus the final verdict distribution.
type ValuationMetrics struct {
	searchDuration *prometheus.HistogramVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	staleServes    *prometheus.CounterVec
	analyses       *prometheus.CounterVec
}

// NewValuationMetrics registers the valuation metrics on the provided registerer.
func NewValuationMetrics(reg prometheus.Registerer) *ValuationMetrics {
	if reg == nil {
		return &ValuationMetrics{}
	}
	searchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "valuation_search_duration_seconds",
		Help:    "Duration of comparable-sales searches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "valuation_cache_hits",
		Help: "Valuation cache reads served from a fresh entry.",
	}, []string{"kind"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "valuation_cache_misses",
		Help: "Valuation cache reads that required a live fetch.",
	}, []string{"kind"})
	staleServes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "valuation_stale_serves",
		Help: "Expired cache entries served after a failed live fetch.",
	}, []string{"kind"})
	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_analyses_total",
		Help: "Completed listing analyses by recommendation.",
	}, []string{"recommendation"})
	reg.MustRegister(searchDuration, cacheHits, cacheMisses, staleServes, analyses)
	return &ValuationMetrics{
		searchDuration: searchDuration,
		cacheHits:      cacheHits,
		cacheMisses:    cacheMisses,
		staleServes:    staleServes,
		analyses:       analyses,
	}
}

// ObserveSearchDuration records how long one comparable-sales search took.
func (v *ValuationMetrics) ObserveSearchDuration(kind string, duration time.Duration) {
	if v == nil || v.searchDuration == nil {
		return
	}
	v.searchDuration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncCacheHit increments the fresh-entry hit counter for the kind.
func (v *ValuationMetrics) IncCacheHit(kind string) {
	if v == nil || v.cacheHits == nil {
		return
	}
	v.cacheHits.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCacheMiss increments the miss counter for the kind.
func (v *ValuationMetrics) IncCacheMiss(kind string) {
	if v == nil || v.cacheMisses == nil {
		return
	}
	v.cacheMisses.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncStaleServe increments the stale-fallback counter for the kind.
func (v *ValuationMetrics) IncStaleServe(kind string) {
	if v == nil || v.staleServes == nil {
		return
	}
	v.staleServes.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncAnalysis increments the completed-analysis counter for a verdict.
func (v *ValuationMetrics) IncAnalysis(recommendation string) {
	if v == nil || v.analyses == nil {
		return
	}
	v.analyses.WithLabelValues(normalizeLabel(recommendation)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
