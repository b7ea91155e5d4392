// Package policy defines how a recency policy drives the cache's entry list.
package policy

// Node is the minimal contract a cache entry must satisfy for a policy.
// Key is fixed for the lifetime of a node. Value points at the stored
// payload so Set can replace it (and its Size) without re-linking.
type Node[V any] interface {
	Key() string
	Value() *V
	Size() int64
}

// Hooks expose O(1) list operations over the cache's intrusive MRU/LRU list.
// Implementations are provided by the cache.
//
// Concurrency: all hook calls happen under the cache lock.
// Hooks manage only the list; the cache owns the key->node map and the
// size counter.
type Hooks[V any] interface {
	// MoveToFront promotes the node to MRU.
	MoveToFront(Node[V])
	// PushFront inserts the node at MRU (used on admission).
	PushFront(Node[V])
	// Remove detaches the node from the list.
	Remove(Node[V])
	// Back returns the current LRU node (or nil if empty).
	Back() Node[V]
	// Len returns the number of resident nodes.
	Len() int
}

// ListPolicy is a policy instance bound to one cache's hooks.
// All methods are invoked under the cache lock.
//
// Semantics:
//   - OnAdd places a new node; it may return a node to evict early.
//     The cache evicts it and then calls OnRemove for it.
//   - OnGet/OnUpdate typically promote the node.
//   - OnRemove notifies the policy that the cache is dropping the node.
//     The cache unlinks it from the list itself.
type ListPolicy[V any] interface {
	OnAdd(Node[V]) (evict Node[V])
	OnGet(Node[V])
	OnUpdate(Node[V])
	OnRemove(Node[V])
}

// Policy is a factory binding a ListPolicy to a cache's hooks.
type Policy[V any] interface {
	New(Hooks[V]) ListPolicy[V]
}
