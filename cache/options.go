package cache

import (
	"context"
	"log/slog"

	"github.com/IvanBrykalov/bitmapcache/policy"
)

// EvictReason explains why an entry left the cache.
type EvictReason int

const (
	// EvictCapacity: dropped from the LRU end to fit the byte budget.
	EvictCapacity EvictReason = iota
	// EvictCleared: dropped by EvictAll/Clear.
	EvictCleared
	// EvictInvalidated: dropped by InvalidatePrefix.
	EvictInvalidated
	// EvictRemoved: dropped by Remove.
	EvictRemoved
	// EvictReplaced: the old value of a key overwritten by Set.
	EvictReplaced
)

func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictCleared:
		return "cleared"
	case EvictInvalidated:
		return "invalidated"
	case EvictRemoved:
		return "removed"
	case EvictReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Counted reports whether the reason contributes to EvictionCount.
// Only budget pressure and EvictAll/Clear do.
func (r EvictReason) Counted() bool {
	return r == EvictCapacity || r == EvictCleared
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
// Hooks are called under the cache lock.
type Metrics interface {
	Hit()
	Miss()
	Put()
	Evict(reason EvictReason)
	Size(entries int, bytes int64)
}

// MemoryBudget reports how many bytes the cache may hold.
type MemoryBudget func() int64

// Options configures the cache. Zero values are safe except MaxSize and
// SizeOf; defaults applied in New():
//   - nil Policy   => LRU
//   - nil Metrics  => NoopMetrics
//   - nil Logger   => discard
type Options[V any] struct {
	// MaxSize is the byte budget. Must be > 0.
	MaxSize int64

	// SizeOf reports the size of a value in bytes. It must be pure and
	// non-negative; a negative size trips the consistency check.
	SizeOf func(v V) int64

	// Policy drives the recency list; nil => LRU.
	Policy policy.Policy[V]

	// Loader produces a value on a miss. Used by GetOrLoad.
	Loader func(ctx context.Context, key string) (V, error)

	// OnEvict is called for every entry leaving the cache, under the cache
	// lock; keep callbacks lightweight and never call back into the cache.
	OnEvict func(key string, v V, reason EvictReason)

	Metrics Metrics
	Logger  *slog.Logger
}
