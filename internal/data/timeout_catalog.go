package data

import (
	"context"
	"time"

	"github.com/udisondev/invengine/internal/model"
)

// TimeoutCatalog — model.Catalog, ограничивающий каждый lookup своим дедлайном.
//
// Used for lookups made inside a character mutation, whose context is never
// canceled. A lookup cut by the deadline returns ctx's error; callers treat it as a miss.
type TimeoutCatalog struct {
	src     model.Catalog
	timeout time.Duration
}

// WithLookupTimeout wraps src so every ItemByID gets at most d.
// d <= 0 returns src unchanged.
func WithLookupTimeout(src model.Catalog, d time.Duration) model.Catalog {
	if d <= 0 || src == nil {
		return src
	}
	return &TimeoutCatalog{src: src, timeout: d}
}

// ItemByID implements model.Catalog.
func (c *TimeoutCatalog) ItemByID(ctx context.Context, itemID int32) (*model.ItemTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.src.ItemByID(ctx, itemID)
}
