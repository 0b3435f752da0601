package visits

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ryhazerus/visits/store"
)

// Service counts page visits through a store and caches the last observed
// count of every page for up to the configured TTL.
//
// Increments are written through to the store before the cache is touched, so
// the store is never behind the cache. Reads prefer the cache while it is
// fresh. Concurrent operations on the same page may overwrite each other's
// cache entry in any order; the cache is advisory and the store stays the
// source of truth.
type Service struct {
	store      store.Store
	cache      *cache
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	logger     logrus.FieldLogger
	metrics    Metrics
}

// New creates a Service backed by s. If s is nil, an in-memory store is used.
func New(s store.Store, opts ...Option) *Service {
	svc := &Service{
		store: s,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, o := range opts {
		o(svc)
	}
	if svc.store == nil {
		svc.store = store.NewMemoryStore()
	}
	if svc.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		svc.logger = l
	}
	if svc.metrics == nil {
		svc.metrics = NopMetrics{}
	}
	svc.cache = newCache(svc.maxEntries)
	return svc
}

// IncrementVisit records a visit to pageID and returns the new count. The
// store is always incremented; on success the cache entry for pageID is
// overwritten with the returned count. On failure the cache is left as it was.
func (s *Service) IncrementVisit(ctx context.Context, pageID string) (Result, error) {
	count, err := s.store.Increment(ctx, pageID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"op":      "increment",
			"page_id": pageID,
		}).WithError(err).Debug("store error")
		return Result{}, fmt.Errorf("visits: store error: %w", err)
	}

	s.remember(pageID, count)

	return Result{Visits: count, ServedVia: FromStore}, nil
}

// VisitCount returns the visit count of pageID. A cached count younger than
// the TTL is returned without touching the store. Otherwise the store is read,
// the cache refreshed, and the store's answer returned. Unknown pages count 0.
func (s *Service) VisitCount(ctx context.Context, pageID string) (Result, error) {
	if e, ok := s.cache.get(pageID); ok && s.fresh(e) {
		s.metrics.CacheHit()
		s.logger.WithField("page_id", pageID).Debug("cache hit")
		return Result{Visits: e.count, ServedVia: FromCache}, nil
	}

	s.metrics.CacheMiss()
	s.logger.WithField("page_id", pageID).Debug("cache miss")

	count, err := s.store.Get(ctx, pageID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"op":      "get",
			"page_id": pageID,
		}).WithError(err).Debug("store error")
		return Result{}, fmt.Errorf("visits: store error: %w", err)
	}

	s.remember(pageID, count)

	return Result{Visits: count, ServedVia: FromStore}, nil
}

// Close releases resources held by the service's store.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) fresh(e entry) bool {
	return s.now().Sub(e.observedAt) < s.ttl
}

func (s *Service) remember(pageID string, count int64) {
	if s.cache.set(pageID, count, s.now()) {
		s.metrics.CacheEviction()
	}
}
