package store

import "context"

// Store defines the interface for visit counter backends. Implementations are
// the authoritative source of truth for counts and must be safe for
// concurrent use.
type Store interface {
	// Increment atomically adds one to the counter for key and returns the new
	// value. Unknown keys start at zero, so their first increment returns 1.
	Increment(ctx context.Context, key string) (current int64, err error)

	// Get returns the current counter value for key, or 0 if the key is
	// unknown. It never mutates state.
	Get(ctx context.Context, key string) (current int64, err error)

	// Close releases any resources held by the store.
	Close() error
}
