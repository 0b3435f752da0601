package visits

// Provenance tells whether a Result was served from the local cache or
// obtained through a round-trip to the counter store.
type Provenance int

const (
	// FromStore marks values returned by the store, either as the result of an
	// increment or of a read that missed the cache.
	FromStore Provenance = iota
	// FromCache marks values served from the local cache without touching the
	// store.
	FromCache
)

// Wire labels. Consumers depend on these exact strings; the store label is
// used for every backend.
const (
	labelStore = "redis"
	labelCache = "in_memory"
)

// String returns the wire label of p.
func (p Provenance) String() string {
	switch p {
	case FromCache:
		return labelCache
	default:
		return labelStore
	}
}

// MarshalText implements encoding.TextMarshaler so Provenance encodes as its
// wire label in JSON.
func (p Provenance) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Result is the answer to a visit operation.
type Result struct {
	Visits    int64      `json:"visits"`
	ServedVia Provenance `json:"served_via"`
}
