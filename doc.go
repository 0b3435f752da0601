// Package visits counts page visits. It keeps a short-lived in-memory cache in
// front of an authoritative counter store and reports where each answer came
// from.
//
// # Key Concepts
//
//   - [store.Store] is the counter backend: in-memory, SQLite, or Redis. It is
//     the source of truth and is responsible for atomic increments.
//   - [Service] serves increments and reads. Increments always go to the store
//     first (write-through) and then refresh the cache. Reads are answered
//     from the cache while the cached value is younger than the TTL and from
//     the store otherwise (read-through).
//   - [Provenance] labels each [Result]: "in_memory" when served from the
//     cache, "redis" when a store round-trip produced the value.
//
// # Quick Start
//
//	svc := visits.New(store.NewMemoryStore(), visits.WithTTL(5*time.Second))
//	defer svc.Close()
//
//	res, err := svc.IncrementVisit(ctx, "home")
//	// res.Visits == 1, res.ServedVia == visits.FromStore
//
//	res, err = svc.VisitCount(ctx, "home")
//	// res.Visits == 1, res.ServedVia == visits.FromCache
//
// The cache is local to one Service. Instances sharing a store do not
// invalidate each other's caches, so a read may lag the store by up to the TTL.
package visits
