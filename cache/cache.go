// Package cache provides the byte-budgeted LRU image cache used to
// memoize scaled and blended bitmap results. It is an injected service:
// the rendering subsystem creates one at startup and hands it to each
// graphics instance.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gdi/raster"
)

// DefaultBudget is the default cache size budget in bytes (64 MiB,
// roughly the working set of a screenful of scaled document images).
const DefaultBudget = 64 << 20

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Len       int
	Bytes     int
	Budget    int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 with no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type entry struct {
	img  *raster.Image
	cost int
	node *lruNode
}

// ImageCache is a thread-safe LRU cache of immutable images bounded by a
// byte budget. Inserting past the budget evicts least-recently-used
// entries until the new entry fits.
type ImageCache struct {
	mu      sync.Mutex
	budget  int
	bytes   int
	entries map[string]*entry
	order   lruList

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache with the given byte budget; non-positive budgets
// use DefaultBudget.
func New(budget int) *ImageCache {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &ImageCache{
		budget:  budget,
		entries: make(map[string]*entry),
	}
}

// Budget returns the byte budget.
func (c *ImageCache) Budget() int { return c.budget }

// Get returns the cached image for key, marking it most recently used.
func (c *ImageCache) Get(key string) (*raster.Image, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.order.MoveToFront(e.node)
	}
	c.mu.Unlock()
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.img, true
}

// Add inserts an image with the given byte cost, evicting old entries to
// stay within budget. Entries costing more than the whole budget are
// refused.
func (c *ImageCache) Add(key string, img *raster.Image, cost int) {
	if img == nil || cost <= 0 || cost > c.budget {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.bytes -= old.cost
		c.order.Remove(old.node)
		delete(c.entries, key)
	}
	for c.bytes+cost > c.budget {
		oldKey, ok := c.order.RemoveOldest()
		if !ok {
			break
		}
		if old, ok := c.entries[oldKey]; ok {
			c.bytes -= old.cost
			delete(c.entries, oldKey)
			c.evictions.Add(1)
		}
	}
	c.entries[key] = &entry{img: img, cost: cost, node: c.order.PushFront(key)}
	c.bytes += cost
}

// Remove drops a single entry.
func (c *ImageCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.bytes -= e.cost
		c.order.Remove(e.node)
		delete(c.entries, key)
	}
}

// Purge drops every entry. Counters are preserved.
func (c *ImageCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.order.Clear()
	c.bytes = 0
}

// Stats returns a snapshot of the cache counters.
func (c *ImageCache) Stats() Stats {
	c.mu.Lock()
	length := len(c.entries)
	bytes := c.bytes
	c.mu.Unlock()
	return Stats{
		Len:       length,
		Bytes:     bytes,
		Budget:    c.budget,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
