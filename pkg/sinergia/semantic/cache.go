package semantic

import (
	"container/list"
	"sync"
)

// Cache is a bounded LRU of embeddings keyed by model and text. It is safe for
// concurrent use. A nil *Cache is valid and caches nothing.
type Cache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	items map[uint64]*list.Element

	hits, misses uint64
}

type cacheEntry struct {
	key uint64
	vec []float32
}

// NewCache returns a cache holding up to capacity vectors, or nil when
// capacity is not positive.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		return nil
	}
	return &Cache{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[uint64]*list.Element, capacity),
	}
}

func cacheKey(model, text string) uint64 {
	return hash64([]byte(model + "\n" + text))
}

// Get returns a copy of the cached vector for text under model.
func (c *Cache) Get(model, text string) ([]float32, bool) {
	if c == nil {
		return nil, false
	}
	key := cacheKey(model, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		c.hits++
		return cloneVec(el.Value.(*cacheEntry).vec), true
	}
	c.misses++
	return nil, false
}

// Add stores a copy of vec, evicting the least recently used entry when full.
func (c *Cache) Add(model, text string, vec []float32) {
	if c == nil {
		return
	}
	key := cacheKey(model, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).vec = cloneVec(vec)
		c.ll.MoveToFront(el)
		return
	}
	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, vec: cloneVec(vec)})
	if c.ll.Len() > c.cap {
		if back := c.ll.Back(); back != nil {
			c.ll.Remove(back)
			delete(c.items, back.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func cloneVec(vec []float32) []float32 {
	if len(vec) == 0 {
		return nil
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
