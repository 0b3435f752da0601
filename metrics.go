package visits

// Metrics receives cache events from a Service. The metrics package provides a
// Prometheus implementation.
type Metrics interface {
	// CacheHit is called when a read is answered from the cache.
	CacheHit()
	// CacheMiss is called when a read has to consult the store, either because
	// no entry exists or because the entry is stale.
	CacheMiss()
	// CacheEviction is called when the size bound pushes an entry out.
	CacheEviction()
}

// NopMetrics discards all events.
type NopMetrics struct{}

func (NopMetrics) CacheHit()      {}
func (NopMetrics) CacheMiss()     {}
func (NopMetrics) CacheEviction() {}
