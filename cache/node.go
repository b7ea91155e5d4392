package cache

// node is an intrusive doubly linked list element owned by the cache.
// The size is captured once at insertion so that removal subtracts exactly
// what was added, whatever SizeOf would say later.
type node[V any] struct {
	key string
	val V

	// Intrusive list links: head is MRU, tail is LRU.
	prev *node[V]
	next *node[V]

	size int64
}

// Key returns the node key (part of policy.Node interface).
func (n *node[V]) Key() string { return n.key }

// Value returns a pointer to the stored value (part of policy.Node interface).
// NOTE: only dereference it while holding the cache lock.
func (n *node[V]) Value() *V { return &n.val }

// Size returns the bytes accounted for this entry (part of policy.Node interface).
func (n *node[V]) Size() int64 { return n.size }
