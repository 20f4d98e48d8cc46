package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for registry lookups.
const (
	OutcomeFetched = "fetched"
	OutcomeCached  = "cached"
	OutcomeFailed  = "failed"
)

// Metrics provides observability for registry searches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Lookups         *prometheus.CounterVec
	LookupDuration  prometheus.Histogram
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	CacheLatency    prometheus.Histogram
	SkippedRecords  prometheus.Counter
	CandidatesFound prometheus.Histogram
}

// New registers the registry metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "covrecord_registry_lookups_total",
			Help: "Registry searches by outcome",
		}, []string{"outcome"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "covrecord_registry_lookup_duration_seconds",
			Help:    "Duration of registry page fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "covrecord_registry_cache_hits_total",
			Help: "Searches answered from cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "covrecord_registry_cache_misses_total",
			Help: "Searches not found in cache",
		}),
		CacheLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "covrecord_registry_cache_latency_seconds",
			Help:    "Latency of cache reads",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		SkippedRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "covrecord_registry_skipped_records_total",
			Help: "Malformed candidate blocks skipped while parsing",
		}),
		CandidatesFound: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "covrecord_registry_candidates_per_search",
			Help:    "Number of candidates returned by a search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 200},
		}),
	}
}

func (m *Metrics) RecordLookup(outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
}

// ObserveLookup records a page fetch started at start.
func (m *Metrics) ObserveLookup(start time.Time) {
	if m == nil {
		return
	}
	m.LookupDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

func (m *Metrics) ObserveCacheLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.CacheLatency.Observe(d.Seconds())
}

func (m *Metrics) RecordParse(candidates, skipped int) {
	if m == nil {
		return
	}
	m.CandidatesFound.Observe(float64(candidates))
	m.SkippedRecords.Add(float64(skipped))
}
