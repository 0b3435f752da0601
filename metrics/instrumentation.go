package metrics

import (
	"context"
	"time"

	"github.com/ryhazerus/visits/store"
)

type instrumentStore struct {
	backend   string
	collector *Collector
	next      store.Store
}

// InstrumentStore wraps next so that every operation is counted and timed
// under the given backend label.
func (c *Collector) InstrumentStore(backend string, next store.Store) store.Store {
	return &instrumentStore{
		backend:   backend,
		collector: c,
		next:      next,
	}
}

func (s *instrumentStore) Increment(ctx context.Context, key string) (count int64, err error) {
	defer func(begin time.Time) {
		s.track("Increment", begin, err)
	}(time.Now())

	return s.next.Increment(ctx, key)
}

func (s *instrumentStore) Get(ctx context.Context, key string) (count int64, err error) {
	defer func(begin time.Time) {
		s.track("Get", begin, err)
	}(time.Now())

	return s.next.Get(ctx, key)
}

func (s *instrumentStore) Close() error {
	return s.next.Close()
}

func (s *instrumentStore) track(method string, begin time.Time, err error) {
	if err != nil {
		s.collector.storeErrCount.WithLabelValues(s.backend, method).Inc()
		return
	}

	s.collector.storeOpCount.WithLabelValues(s.backend, method).Inc()
	s.collector.storeLatency.WithLabelValues(s.backend, method).Observe(time.Since(begin).Seconds())
}
