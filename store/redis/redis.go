// Package redis provides a [store.Store] backed by Redis. Counters are plain
// Redis strings updated with INCR, so increments stay atomic across every
// process sharing the same Redis instance.
package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ryhazerus/visits/store"
)

const backend = "redis"

// DefaultPrefix is prepended to page IDs to build Redis keys.
const DefaultPrefix = "visits:"

// Compile-time interface check.
var _ store.Store = (*RedisStore)(nil)

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithPrefix sets the key prefix. An empty prefix stores page IDs verbatim.
func WithPrefix(prefix string) Option {
	return func(r *RedisStore) {
		r.prefix = prefix
	}
}

// NewRedisStore creates a new Redis-backed store. The store takes ownership
// of the client and closes it on Close.
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	r := &RedisStore{client: client, prefix: DefaultPrefix}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Increment atomically increments the counter for key with INCR.
func (r *RedisStore) Increment(ctx context.Context, key string) (int64, error) {
	count, err := r.client.Incr(ctx, r.redisKey(key)).Result()
	if err != nil {
		return 0, store.Unavailable(backend, "increment", key, err)
	}
	return count, nil
}

// Get returns the current counter value for key. A missing key reads as 0.
func (r *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, store.Unavailable(backend, "get", key, err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, store.Unavailable(backend, "get", key, err)
	}

	return count, nil
}

// Ping checks connectivity to Redis.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return store.Unavailable(backend, "ping", "", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) redisKey(key string) string {
	return r.prefix + key
}
