package visits

import (
	"container/list"
	"sync"
	"time"
)

// entry is a count observed at the store at observedAt.
type entry struct {
	key        string
	count      int64
	observedAt time.Time
}

// cache maps page IDs to the last count observed at the store. It only guards
// its own structure; callers decide freshness. With maxEntries > 0 the least
// recently used entry is evicted when the bound is reached.
type cache struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	lru        *list.List
	maxEntries int
}

func newCache(maxEntries int) *cache {
	return &cache{
		items:      make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: maxEntries,
	}
}

// get returns the entry for key and marks it as recently used.
func (c *cache) get(key string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return entry{}, false
	}
	c.lru.MoveToFront(elem)
	return *elem.Value.(*entry), true
}

// set overwrites the entry for key unconditionally. It reports whether another
// entry was evicted to make room.
func (c *cache) set(key string, count int64, observedAt time.Time) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry)
		e.count = count
		e.observedAt = observedAt
		c.lru.MoveToFront(elem)
		return false
	}

	if c.maxEntries > 0 && c.lru.Len() >= c.maxEntries {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
			evicted = true
		}
	}

	c.items[key] = c.lru.PushFront(&entry{
		key:        key,
		count:      count,
		observedAt: observedAt,
	})
	return evicted
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
