package visits

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ryhazerus/visits/store"
)

// countingStore wraps a MemoryStore, counts calls, and can be switched into
// failure mode.
type countingStore struct {
	mu    sync.Mutex
	next  *store.MemoryStore
	incrs int
	gets  int
	fail  error
}

func newCountingStore() *countingStore {
	return &countingStore{next: store.NewMemoryStore()}
}

func (s *countingStore) Increment(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	s.incrs++
	fail := s.fail
	s.mu.Unlock()

	if fail != nil {
		return 0, store.Unavailable("test", "increment", key, fail)
	}
	return s.next.Increment(ctx, key)
}

func (s *countingStore) Get(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	s.gets++
	fail := s.fail
	s.mu.Unlock()

	if fail != nil {
		return 0, store.Unavailable("test", "get", key, fail)
	}
	return s.next.Get(ctx, key)
}

func (s *countingStore) Close() error { return nil }

func (s *countingStore) setFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *countingStore) calls() (incrs, gets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incrs, s.gets
}

var errConnRefused = errors.New("connection refused")

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type countingMetrics struct {
	mu                      sync.Mutex
	hits, misses, evictions int
}

func (m *countingMetrics) CacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

func (m *countingMetrics) CacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
}

func (m *countingMetrics) CacheEviction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictions++
}
