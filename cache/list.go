package cache

import "github.com/IvanBrykalov/bitmapcache/policy"

// -------------------- recency list (mu held) --------------------

// insertFront inserts n at MRU in O(1).
func (c *cache[V]) insertFront(n *node[V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.len++
}

// moveToFront promotes n to MRU in O(1).
func (c *cache[V]) moveToFront(n *node[V]) {
	if n == c.head {
		return
	}
	// detach
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if c.tail == n {
		c.tail = n.prev
	}
	// insert at head
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

// unlink removes n from the list in O(1). Size accounting is left to the
// caller.
func (c *cache[V]) unlink(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if c.head == n {
		c.head = n.next
	}
	if c.tail == n {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
	c.len--
}

// back returns the current LRU node in O(1).
func (c *cache[V]) back() *node[V] { return c.tail }

// -------------------- policy hooks --------------------

// listHooks adapts the cache's list operations to policy.Hooks.
type listHooks[V any] struct{ c *cache[V] }

func (h listHooks[V]) MoveToFront(x policy.Node[V]) { h.c.moveToFront(x.(*node[V])) }
func (h listHooks[V]) PushFront(x policy.Node[V])   { h.c.insertFront(x.(*node[V])) }
func (h listHooks[V]) Remove(x policy.Node[V])      { h.c.unlink(x.(*node[V])) }
func (h listHooks[V]) Back() policy.Node[V] {
	// Avoid returning a typed nil inside a non-nil interface.
	if t := h.c.back(); t != nil {
		return t
	}
	return nil
}
func (h listHooks[V]) Len() int { return h.c.len }
