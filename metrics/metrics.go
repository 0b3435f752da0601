// Package metrics exposes Prometheus collectors for the visit counter: cache
// hit/miss counts reported by visits.Service and per-backend store operation
// counts, errors and latencies.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ryhazerus/visits"
)

// Namespace prefixes every metric name.
const Namespace = "visits"

// Field names for metric labels.
const (
	FieldBackend = "backend"
	FieldMethod  = "method"
	FieldResult  = "result"
)

// Cache request results.
const (
	resultEviction = "eviction"
	resultHit      = "hit"
	resultMiss     = "miss"
)

// Compile-time interface check.
var _ visits.Metrics = (*Collector)(nil)

// Collector holds the service's Prometheus metrics.
type Collector struct {
	cacheRequests *prometheus.CounterVec
	storeErrCount *prometheus.CounterVec
	storeOpCount  *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec
}

// New creates the collectors and registers them with r. It panics if any
// collector is already registered, like prometheus.MustRegister.
func New(r prometheus.Registerer) *Collector {
	c := &Collector{
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Number of cache lookups and evictions by result",
		}, []string{FieldResult}),
		storeErrCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "err_count",
			Help:      "Number of failed store operations",
		}, []string{FieldBackend, FieldMethod}),
		storeOpCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "op_count",
			Help:      "Number of store operations performed",
		}, []string{FieldBackend, FieldMethod}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "op_latency_seconds",
			Help:      "Distribution of store op duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{FieldBackend, FieldMethod}),
	}

	r.MustRegister(
		c.cacheRequests,
		c.storeErrCount,
		c.storeOpCount,
		c.storeLatency,
	)

	return c
}

func (c *Collector) CacheHit() {
	c.cacheRequests.WithLabelValues(resultHit).Inc()
}

func (c *Collector) CacheMiss() {
	c.cacheRequests.WithLabelValues(resultMiss).Inc()
}

func (c *Collector) CacheEviction() {
	c.cacheRequests.WithLabelValues(resultEviction).Inc()
}
