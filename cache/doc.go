// Package cache provides a byte-budgeted, thread-safe LRU memory cache for
// decoded images (or any payload whose size in bytes can be computed).
//
// Design
//
//   - Budget: every value is weighed once by Options.SizeOf when it is Set.
//     The cache tracks the sum of those sizes and, after each Set, evicts
//     least-recently-used entries until the sum fits Options.MaxSize. A
//     value that alone exceeds MaxSize is silently not stored.
//
//   - Concurrency: one sync.Mutex guards the map, the recency list, the
//     tracked size and the counters. All operations, accessors included,
//     run under it; there is no sharding and no lock-free read path.
//
//   - Storage: a map[string]*node for lookups and an intrusive MRU↔LRU
//     doubly linked list for ordering, driven by a pluggable recency policy
//     (LRU by default, see package policy).
//
//   - Keys: a key is a resource identifier, KeySeparator, then a variant
//     descriptor (see Key). InvalidatePrefix drops every cached variant of
//     one resource. It is not counted as an eviction.
//
//   - Consistency: if the tracked size ever goes negative, or stays non-zero
//     once the cache is empty, the cache panics with an error wrapping
//     ErrInconsistentSize. This only happens when SizeOf misbehaves.
//
//   - GetOrLoad: coalesces concurrent loads for the same key with
//     golang.org/x/sync/singleflight. Without Options.Loader it returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Put/Evict/Size signals.
//     NoopMetrics is the default; metrics/prom exports them to Prometheus.
//
// Basic usage
//
//	c, err := cache.New(cache.Options[*bitmap.Bitmap]{
//	    MaxSize: 64 << 20,
//	    SizeOf:  bitmap.Bytes,
//	})
//	if err != nil {
//	    return err
//	}
//	key := cache.Key("https://example.com/a.png", cache.Variant{Width: 200, Height: 200})
//	_ = c.Set(key, bm)
//	if bm, ok, _ := c.Get(key); ok {
//	    draw(bm)
//	}
//	c.InvalidatePrefix("https://example.com/a.png") // every size of a.png
package cache
