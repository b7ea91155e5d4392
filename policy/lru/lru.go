// Package lru implements the least-recently-used recency policy.
package lru

import "github.com/IvanBrykalov/bitmapcache/policy"

// lru is a classic "move-to-front" Least-Recently-Used policy.
// It delegates list manipulation to policy.Hooks provided by the cache.
type lru[V any] struct {
	h policy.Hooks[V]
}

type lruPolicy[V any] struct{}

// New returns a Policy factory that constructs LRU instances.
func New[V any]() policy.Policy[V] { return lruPolicy[V]{} }

// New implements policy.Policy by binding the cache hooks.
func (lruPolicy[V]) New(h policy.Hooks[V]) policy.ListPolicy[V] {
	return &lru[V]{h: h}
}

// OnAdd places the new entry at MRU. LRU never picks a victim on admission;
// the cache trims from the LRU end once the byte budget is exceeded.
func (p *lru[V]) OnAdd(n policy.Node[V]) (evict policy.Node[V]) {
	p.h.PushFront(n)
	return nil
}

// OnGet promotes the entry to MRU.
func (p *lru[V]) OnGet(n policy.Node[V]) { p.h.MoveToFront(n) }

// OnUpdate promotes the entry to MRU (a replacing Set is a recent use).
func (p *lru[V]) OnUpdate(n policy.Node[V]) { p.h.MoveToFront(n) }

// OnRemove is a no-op: LRU keeps no state outside the list.
func (p *lru[V]) OnRemove(_ policy.Node[V]) {}
