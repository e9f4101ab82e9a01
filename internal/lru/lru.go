package lru

import (
	"container/list"
	"sync"
	"time"
)

// EvictCallback is called with every entry leaving the cache
type EvictCallback[K comparable, V any] func(key K, value V)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRU thread-safe LRU cache with expirable entries, expired entries are
// dropped lazily when they are looked up or listed.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	size    int
	ttl     time.Duration
	items   map[K]*list.Element
	order   *list.List
	onEvict EvictCallback[K, V]
	now     func() time.Time
}

// NewLRU returns a cache holding at most size entries for ttl each.
// A size of 0 means unlimited, a ttl of 0 means entries never expire.
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V], ttl time.Duration) *LRU[K, V] {
	if size < 0 {
		size = 0
	}
	return &LRU[K, V]{
		size:    size,
		ttl:     ttl,
		items:   make(map[K]*list.Element),
		order:   list.New(),
		onEvict: onEvict,
		now:     time.Now,
	}
}

// Add adds or renews key, returns true if an older entry was evicted
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.expiresAt = c.expiry()
		c.order.MoveToFront(elem)
		return false
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expiresAt: c.expiry()})
	if c.size > 0 && c.order.Len() > c.size {
		c.removeElement(c.order.Back())
		return true
	}
	return false
}

// Get looks up key and marks it as recently used
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return value, false
	}
	ent := elem.Value.(*entry[K, V])
	if c.expired(ent) {
		c.removeElement(elem)
		return value, false
	}
	c.order.MoveToFront(elem)
	return ent.value, true
}

// Remove removes key, returns true when it was present
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
		return true
	}
	return false
}

// Keys live keys, oldest first
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deleteExpired()
	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		keys = append(keys, elem.Value.(*entry[K, V]).key)
	}
	return keys
}

// Len number of live entries
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deleteExpired()
	return c.order.Len()
}

// Purge evicts every entry
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.order.Back(); elem != nil; elem = c.order.Back() {
		c.removeElement(elem)
	}
}

func (c *LRU[K, V]) expiry() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(c.ttl)
}

func (c *LRU[K, V]) expired(ent *entry[K, V]) bool {
	return !ent.expiresAt.IsZero() && !c.now().Before(ent.expiresAt)
}

func (c *LRU[K, V]) deleteExpired() {
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if c.expired(elem.Value.(*entry[K, V])) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

func (c *LRU[K, V]) removeElement(elem *list.Element) {
	ent := c.order.Remove(elem).(*entry[K, V])
	delete(c.items, ent.key)
	if c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}
