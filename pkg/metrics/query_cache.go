package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueryCacheMetrics records cache effectiveness and remote fetch latency per query key.
type QueryCacheMetrics struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewQueryCacheMetrics registers the query cache metrics on the provided registerer.
func NewQueryCacheMetrics(reg prometheus.Registerer) *QueryCacheMetrics {
	if reg == nil {
		return &QueryCacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_hits_total",
		Help: "Reads served from the query cache.",
	}, []string{"query"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_misses_total",
		Help: "Reads that went to the backing store.",
	}, []string{"query"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_fetch_failures_total",
		Help: "Backing store reads that returned an error.",
	}, []string{"query"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "query_cache_fetch_duration_seconds",
		Help:    "Duration of backing store reads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})
	reg.MustRegister(hits, misses, failures, duration)
	return &QueryCacheMetrics{
		hits:     hits,
		misses:   misses,
		failures: failures,
		duration: duration,
	}
}

func (m *QueryCacheMetrics) Hit(query string) {
	if m == nil || m.hits == nil {
		return
	}
	m.hits.WithLabelValues(normalizeLabel(query)).Inc()
}

func (m *QueryCacheMetrics) Miss(query string) {
	if m == nil || m.misses == nil {
		return
	}
	m.misses.WithLabelValues(normalizeLabel(query)).Inc()
}

func (m *QueryCacheMetrics) Failure(query string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(query)).Inc()
}

// ObserveDuration records how long the remote read for query took.
func (m *QueryCacheMetrics) ObserveDuration(query string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(query)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
