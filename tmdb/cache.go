package tmdb

import (
	"container/list"
	"sync"
	"time"
)

// responseCache is a thread-safe LRU cache whose entries expire after ttl
type responseCache struct {
	ttl       time.Duration
	size      int
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
	now       func() time.Time
}

// entry is stored in the cache
type entry struct {
	key     string
	value   any
	expires time.Time
}

func newResponseCache(ttl time.Duration, size int) *responseCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &responseCache{
		ttl:       ttl,
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		now:       time.Now,
	}
}

// Get retrieves a live value from the cache
func (c *responseCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		return nil, false
	}

	ent := node.Value.(*entry)
	if !c.now().Before(ent.expires) {
		c.removeElement(node)
		return nil, false
	}

	c.evictList.MoveToFront(node)
	return ent.value, true
}

// Put adds or updates a value in the cache
func (c *responseCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)

	if node, exists := c.items[key]; exists {
		c.evictList.MoveToFront(node)
		ent := node.Value.(*entry)
		ent.value = value
		ent.expires = expires
		return
	}

	node := c.evictList.PushFront(&entry{key: key, value: value, expires: expires})
	c.items[key] = node

	if c.evictList.Len() > c.size {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *responseCache) removeElement(node *list.Element) {
	c.evictList.Remove(node)
	delete(c.items, node.Value.(*entry).key)
}

// Clear removes all items from the cache
func (c *responseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// Len returns the number of items in the cache, expired ones included
func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
