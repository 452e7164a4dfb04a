// Package metrics instruments the engine with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	OpSimilarity = "similarity"
	OpTopMatches = "top_matches"
	OpRecommend  = "recommend"
)

// Recorder groups the engine collectors. A nil *Recorder records nothing.
type Recorder struct {
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheErrors *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg. A nil reg
// leaves them unregistered. Registering twice on the same registry panics,
// as with promauto.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastematch_operations_total",
				Help: "Total number of engine operations computed or served from cache",
			},
			[]string{"operation", "method"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tastematch_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
			},
			[]string{"operation", "method"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastematch_cache_hits_total",
				Help: "Total number of results served from the cache",
			},
			[]string{"operation"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastematch_cache_misses_total",
				Help: "Total number of results computed after a cache miss",
			},
			[]string{"operation"},
		),
		cacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tastematch_cache_errors_total",
				Help: "Total number of failed cache reads or writes",
			},
			[]string{"operation"},
		),
	}
}

// ObserveOperation counts one operation and records its duration since start.
func (r *Recorder) ObserveOperation(operation, method string, start time.Time) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, method).Inc()
	r.duration.WithLabelValues(operation, method).Observe(time.Since(start).Seconds())
}

// CacheHit counts a cache hit for operation.
func (r *Recorder) CacheHit(operation string) {
	if r == nil {
		return
	}
	r.cacheHits.WithLabelValues(operation).Inc()
}

// CacheMiss counts a cache miss for operation.
func (r *Recorder) CacheMiss(operation string) {
	if r == nil {
		return
	}
	r.cacheMisses.WithLabelValues(operation).Inc()
}

// CacheError counts a failed cache access for operation.
func (r *Recorder) CacheError(operation string) {
	if r == nil {
		return
	}
	r.cacheErrors.WithLabelValues(operation).Inc()
}
