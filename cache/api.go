package cache

import "context"

// Cache is a byte-budgeted in-memory cache of decoded payloads keyed by
// string. All methods are safe for concurrent use by multiple goroutines;
// every call is serialized on a single cache-wide lock.
//
// A value returned by Get stays owned by the cache. Callers may read it but
// must not assume it is still resident once the call returns.
type Cache[V any] interface {
	// Get returns the value for key and promotes it to most-recently-used.
	// Returns an InvalidInput error for an empty key.
	Get(key string) (V, bool, error)

	// Set inserts or replaces key→v as most-recently-used and then evicts
	// least-recently-used entries until the tracked size fits MaxSize.
	// A value larger than MaxSize on its own is dropped without error.
	// Returns an InvalidInput error for an empty key or a nil value.
	Set(key string, v V) error

	// Remove deletes key if present. It is not counted as an eviction.
	Remove(key string) bool

	// InvalidatePrefix drops every variant cached for a resource: all keys
	// of the form prefix + KeySeparator + variant. It is not counted as an
	// eviction. Returns the number of removed entries.
	InvalidatePrefix(prefix string) int

	// EvictAll evicts every entry, zero-sized ones included.
	EvictAll()

	// Clear is EvictAll. Counters are not reset.
	Clear()

	// GetOrLoad returns the value for key, loading it via Options.Loader on
	// a miss. Concurrent loads for the same key are coalesced.
	GetOrLoad(ctx context.Context, key string) (V, error)

	// Size is the sum of the sizes of all resident entries, in bytes.
	Size() int64
	// MaxSize is the byte budget fixed at construction.
	MaxSize() int64
	// Len is the number of resident entries.
	Len() int
	// Keys lists resident keys from least to most recently used.
	Keys() []string

	HitCount() int64
	MissCount() int64
	PutCount() int64
	EvictionCount() int64

	// Stats returns all counters captured under one lock acquisition.
	Stats() Stats
}

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Size      int64
	MaxSize   int64
	Entries   int
	Hits      int64
	Misses    int64
	Puts      int64
	Evictions int64
}

// HitRate returns hits/(hits+misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
