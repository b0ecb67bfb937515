package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/HeNeos/graph-algorithms-in-maps/resource"
)

// LRU is a bounded least-recently-used cache. It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int
	items     map[K]*list.Element
	evictList *list.List
	cost      func(V) int64
	rc        *resource.Controller
	onEvict   func(K, V)

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
	cost  int64
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithCost sets the function used to charge entries against the controller.
func WithCost[K comparable, V any](fn func(V) int64) Option[K, V] {
	return func(c *LRU[K, V]) { c.cost = fn }
}

// WithController charges entry cost against rc's memory budget.
func WithController[K comparable, V any](rc *resource.Controller) Option[K, V] {
	return func(c *LRU[K, V]) { c.rc = rc }
}

// WithOnEvict registers a callback invoked after an entry leaves the cache.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// NewLRU creates a cache holding at most capacity entries. A capacity below 1
// disables caching.
func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	c := &LRU[K, V]{
		capacity:  capacity,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches value under key and reports whether it was admitted. Entries
// are refused when the capacity is zero, when they cost more than the
// controller's whole budget, or when the controller cannot make room even
// after evicting everything else. A refused entry leaves the cache as it was
// only in the first two cases.
func (c *LRU[K, V]) Set(key K, value V) bool {
	if c.capacity < 1 {
		return false
	}

	var cost int64
	if c.cost != nil {
		cost = c.cost(value)
	}
	if limit := c.rc.Config().MemoryLimitBytes; limit > 0 && cost > limit {
		return false
	}

	c.mu.Lock()
	var evicted []*entry[K, V]
	defer func() {
		c.mu.Unlock()
		c.notify(evicted)
	}()

	if el, ok := c.items[key]; ok {
		evicted = append(evicted, c.removeElement(el))
	}

	for c.evictList.Len() >= c.capacity {
		evicted = append(evicted, c.removeElement(c.evictList.Back()))
	}

	for !c.rc.TryAcquireMemory(cost) {
		back := c.evictList.Back()
		if back == nil {
			return false
		}
		evicted = append(evicted, c.removeElement(back))
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value, cost: cost})
	return true
}

// Remove drops key from the cache.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	el, ok := c.items[key]
	var ent *entry[K, V]
	if ok {
		ent = c.removeElement(el)
	}
	c.mu.Unlock()

	if ok {
		c.notify([]*entry[K, V]{ent})
	}
	return ok
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	evicted := make([]*entry[K, V], 0, c.evictList.Len())
	for c.evictList.Len() > 0 {
		evicted = append(evicted, c.removeElement(c.evictList.Back()))
	}
	c.mu.Unlock()
	c.notify(evicted)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Keys returns the cached keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.evictList.Len())
	for el := c.evictList.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *LRU[K, V]) removeElement(el *list.Element) *entry[K, V] {
	c.evictList.Remove(el)
	ent := el.Value.(*entry[K, V])
	delete(c.items, ent.key)
	c.rc.ReleaseMemory(ent.cost)
	return ent
}

func (c *LRU[K, V]) notify(evicted []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, ent := range evicted {
		c.onEvict(ent.key, ent.value)
	}
}
