package data

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/udisondev/invengine/internal/model"
)

// CatalogCache — read-through кэш шаблонов поверх любого model.Catalog.
//
// Only hits are cached: a miss (or a slow lookup cut by ctx) is retried on the
// next call. Reset drops everything at session end.
type CatalogCache struct {
	src model.Catalog

	mu    sync.RWMutex
	items map[int32]*model.ItemTemplate

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCatalogCache wraps src.
func NewCatalogCache(src model.Catalog) *CatalogCache {
	return &CatalogCache{
		src:   src,
		items: make(map[int32]*model.ItemTemplate),
	}
}

// ItemByID implements model.Catalog.
func (c *CatalogCache) ItemByID(ctx context.Context, itemID int32) (*model.ItemTemplate, error) {
	c.mu.RLock()
	tpl, ok := c.items[itemID]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return tpl, nil
	}

	c.misses.Add(1)
	tpl, err := c.src.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if cached, ok := c.items[itemID]; ok {
		tpl = cached
	} else {
		c.items[itemID] = tpl
	}
	c.mu.Unlock()
	return tpl, nil
}

// Cached returns a template only if it is already in the cache.
func (c *CatalogCache) Cached(itemID int32) (*model.ItemTemplate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tpl, ok := c.items[itemID]
	return tpl, ok
}

// Reset invalidates the cache (new session).
func (c *CatalogCache) Reset() {
	c.mu.Lock()
	clear(c.items)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Len returns the number of cached templates.
func (c *CatalogCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns hit/miss counters since the last Reset.
func (c *CatalogCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
