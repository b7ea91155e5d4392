package cache

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/IvanBrykalov/bitmapcache/internal/util"
	"github.com/IvanBrykalov/bitmapcache/policy"
	"github.com/IvanBrykalov/bitmapcache/policy/lru"
)

// cache is a byte-budgeted KV store with a pluggable recency policy.
// One mutex guards the map, the list, the size and the counters together:
// the size invariant only holds if they change as a unit.
type cache[V any] struct {
	// ---- guarded by mu ----
	mu   sync.Mutex
	m    map[string]*node[V]
	head *node[V] // MRU
	tail *node[V] // LRU
	len  int      // number of resident entries
	size int64    // sum of node sizes

	hits      int64
	misses    int64
	puts      int64
	evictions int64

	maxSize int64
	pol     policy.ListPolicy[V]
	opt     Options[V]
	log     *slog.Logger

	// coalesces concurrent loads in GetOrLoad.
	sf singleflight.Group
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Metrics  -> NoopMetrics
//   - nil Policy   -> LRU
//   - nil Logger   -> discard
//
// MaxSize must be positive and SizeOf non-nil; otherwise New returns an
// InvalidInput error.
func New[V any](opt Options[V]) (Cache[V], error) {
	if opt.MaxSize <= 0 {
		return nil, invalidArgument("MaxSize must be > 0, got %d", opt.MaxSize)
	}
	if opt.SizeOf == nil {
		return nil, invalidArgument("SizeOf is required")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[V]()
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	c := &cache[V]{
		m:       make(map[string]*node[V]),
		maxSize: opt.MaxSize,
		opt:     opt,
		log:     opt.Logger.With("component", "bitmapcache", "max_size", opt.MaxSize),
	}
	c.pol = opt.Policy.New(listHooks[V]{c: c})

	// Optional: adapters that also export the budget.
	if mm, ok := opt.Metrics.(interface{ MaxSize(int64) }); ok {
		mm.MaxSize(opt.MaxSize)
	}
	opt.Metrics.Size(0, 0)
	return c, nil
}

// NewFromBudget is New with MaxSize taken from budget.
// A nil budget falls back to DefaultMemoryBudget.
func NewFromBudget[V any](budget MemoryBudget, opt Options[V]) (Cache[V], error) {
	if budget == nil {
		budget = DefaultMemoryBudget
	}
	opt.MaxSize = budget()
	return New(opt)
}

// DefaultMemoryBudget gives the cache about one seventh of the memory
// available to the process (the Go soft memory limit, or 256 MiB without one).
func DefaultMemoryBudget() int64 { return util.ReasonableMaxSize() }

// ---- Cache[V] implementation ----

// Get returns the value for key and promotes it on a hit.
func (c *cache[V]) Get(key string) (V, bool, error) {
	var zero V
	if key == "" {
		return zero, false, invalidArgument("key must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[key]
	if !ok {
		c.misses++
		c.opt.Metrics.Miss()
		return zero, false, nil
	}
	c.pol.OnGet(n)
	c.hits++
	c.opt.Metrics.Hit()
	return n.val, true, nil
}

// Set inserts or replaces key→v and trims the cache back under MaxSize.
// A value that alone exceeds MaxSize is not stored; this is not an error.
func (c *cache[V]) Set(key string, v V) error {
	if key == "" {
		return invalidArgument("key must not be empty")
	}
	if isNil(v) {
		return invalidArgument("value for key %q must not be nil", key)
	}

	// SizeOf is pure; keep it out of the critical section.
	added := c.opt.SizeOf(v)
	if added > c.maxSize {
		c.log.Debug("rejecting oversized value", "key", key, "size", added)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.puts++
	c.opt.Metrics.Put()

	if n, ok := c.m[key]; ok {
		// In-place replace: net size delta is new - old.
		old := n.val
		c.size += added - n.size
		n.val = v
		n.size = added
		c.pol.OnUpdate(n)
		c.opt.Metrics.Evict(EvictReplaced)
		if cb := c.opt.OnEvict; cb != nil {
			cb(key, old, EvictReplaced)
		}
	} else {
		n := &node[V]{key: key, val: v, size: added}
		c.m[key] = n
		c.size += added
		if ev := c.pol.OnAdd(n); ev != nil {
			c.removeLocked(ev.(*node[V]), EvictCapacity)
		}
	}

	c.trimLocked(c.maxSize, EvictCapacity)
	return nil
}

// Remove deletes key if present. Explicit removal is not an eviction.
func (c *cache[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[key]
	if !ok {
		return false
	}
	c.removeLocked(n, EvictRemoved)
	c.opt.Metrics.Size(c.len, c.size)
	return true
}

// InvalidatePrefix removes every key whose resource part equals prefix.
func (c *cache[V]) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for n := c.tail; n != nil; {
		prev := n.prev // n is unlinked below
		if hasResource(n.key, prefix) {
			c.removeLocked(n, EvictInvalidated)
			removed++
		}
		n = prev
	}
	if removed > 0 {
		c.log.Debug("invalidated resource", "resource", prefix, "entries", removed, "size", c.size)
		c.opt.Metrics.Size(c.len, c.size)
	}
	return removed
}

// EvictAll evicts every entry. A target of -1 also drops zero-sized entries.
func (c *cache[V]) EvictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trimLocked(-1, EvictCleared)
}

// Clear is EvictAll.
func (c *cache[V]) Clear() { c.EvictAll() }

// GetOrLoad returns the value for key; on a miss it loads via Options.Loader,
// coalescing concurrent loads for the same key. If no Loader is configured,
// returns ErrNoLoader.
//
// The load runs with the ctx of the caller that started it. Other callers
// waiting on the same key return early with ctx.Err() if their own ctx ends.
func (c *cache[V]) GetOrLoad(ctx context.Context, key string) (V, error) {
	var zero V

	// fast path
	v, ok, err := c.Get(key)
	if err != nil || ok {
		return v, err
	}
	if c.opt.Loader == nil {
		return zero, ErrNoLoader
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		// double-check after joining the flight
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, key)
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, v); err != nil {
			return nil, err
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// ---- accessors ----

func (c *cache[V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// MaxSize is immutable; the lock only keeps every accessor on one discipline.
func (c *cache[V]) MaxSize() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxSize
}

func (c *cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.len
}

func (c *cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.len)
	for n := c.tail; n != nil; n = n.prev {
		keys = append(keys, n.key)
	}
	return keys
}

func (c *cache[V]) HitCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func (c *cache[V]) MissCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}

func (c *cache[V]) PutCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.puts
}

func (c *cache[V]) EvictionCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}

func (c *cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:      c.size,
		MaxSize:   c.maxSize,
		Entries:   c.len,
		Hits:      c.hits,
		Misses:    c.misses,
		Puts:      c.puts,
		Evictions: c.evictions,
	}
}

// -------------------- internals (mu held) --------------------

// trimLocked evicts from the LRU end until size <= target or the cache is
// empty. It panics with ErrInconsistentSize if the size is negative, or
// non-zero with no entries left.
func (c *cache[V]) trimLocked(target int64, reason EvictReason) {
	for {
		if c.size < 0 || (c.len == 0 && c.size != 0) {
			c.log.Error("size accounting is inconsistent",
				"size", c.size, "entries", c.len, "target", target)
			panic(inconsistency(c.size, c.len, target))
		}
		if c.size <= target || c.len == 0 {
			break
		}
		c.removeLocked(c.back(), reason)
	}
	c.opt.Metrics.Size(c.len, c.size)
}

// removeLocked drops n from the policy, the list and the map, updates the
// size, and reports the removal. Only Counted reasons bump EvictionCount.
func (c *cache[V]) removeLocked(n *node[V], reason EvictReason) {
	c.pol.OnRemove(n)
	c.unlink(n)
	delete(c.m, n.key)
	c.size -= n.size
	if reason.Counted() {
		c.evictions++
	}
	c.opt.Metrics.Evict(reason)
	if cb := c.opt.OnEvict; cb != nil {
		// Called under the lock; see Options.OnEvict.
		cb(n.key, n.val, reason)
	}
}

// peek reads key without promoting it or touching the counters.
func (c *cache[V]) peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.m[key]; ok {
		return n.val, true
	}
	var zero V
	return zero, false
}

// isNil reports whether v is a nil pointer, slice, map, func, chan or
// interface. Other kinds are never nil.
func isNil[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
