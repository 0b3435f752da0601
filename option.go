package visits

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTTL is how long a cached count is served without consulting the
// store.
const DefaultTTL = 5 * time.Second

// Option configures the Service.
type Option func(*Service)

// WithTTL sets the maximum age of a cached count. A value <= 0 disables read
// caching: every read goes to the store.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithMaxEntries bounds the cache to n entries, evicting the least recently
// used page ID first. n <= 0 leaves the cache unbounded, which is the default.
func WithMaxEntries(n int) Option {
	return func(s *Service) {
		s.maxEntries = n
	}
}

// WithClock replaces time.Now as the source of cache timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger for cache and store events. By default nothing is
// logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the receiver of cache events.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}
