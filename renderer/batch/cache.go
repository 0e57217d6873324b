package batch

import "github.com/mlange-42/ark/ecs"

// Cache keeps one Batch per scene entity across frames. Entries that are
// not fetched between two sweeps belong to removed entities and are dropped.
type Cache struct {
	entries map[ecs.Entity]*cacheEntry
	frame   uint64
}

type cacheEntry struct {
	batch *Batch
	seen  uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[ecs.Entity]*cacheEntry)}
}

// Get returns the batch for e, creating it on first use, and marks it live
// for the current frame.
func (c *Cache) Get(e ecs.Entity) *Batch {
	ent, ok := c.entries[e]
	if !ok {
		ent = &cacheEntry{batch: New()}
		c.entries[e] = ent
	}
	ent.seen = c.frame
	return ent.batch
}

// Sweep drops every batch not fetched since the previous sweep and starts
// a new frame. It returns the number of batches dropped.
func (c *Cache) Sweep() int {
	dropped := 0
	for e, ent := range c.entries {
		if ent.seen != c.frame {
			delete(c.entries, e)
			dropped++
		}
	}
	c.frame++
	return dropped
}

// Len returns the number of cached batches.
func (c *Cache) Len() int { return len(c.entries) }

// Reset drops all batches.
func (c *Cache) Reset() {
	clear(c.entries)
}
