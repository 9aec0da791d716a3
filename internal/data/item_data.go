package data

import (
	"context"
	"fmt"
	"sort"

	"github.com/udisondev/invengine/internal/model"
)

// ItemCatalog — статический in-memory каталог шаблонов (map[itemID]*ItemTemplate).
// Read-only после создания, безопасен для конкурентного чтения.
type ItemCatalog struct {
	items map[int32]*model.ItemTemplate
}

// NewItemCatalog builds a catalog from templates; later duplicates overwrite earlier ones.
func NewItemCatalog(tpls ...model.ItemTemplate) *ItemCatalog {
	c := &ItemCatalog{items: make(map[int32]*model.ItemTemplate, len(tpls))}
	for i := range tpls {
		tpl := tpls[i]
		c.items[tpl.ID] = &tpl
	}
	return c
}

// ItemByID implements model.Catalog.
func (c *ItemCatalog) ItemByID(ctx context.Context, itemID int32) (*model.ItemTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("item %d: %w", itemID, err)
	}
	tpl, ok := c.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", itemID, model.ErrItemNotFound)
	}
	return tpl, nil
}

// Len returns the number of templates.
func (c *ItemCatalog) Len() int {
	return len(c.items)
}

// IDs returns all template ids, ascending.
func (c *ItemCatalog) IDs() []int32 {
	ids := make([]int32, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// Templates returns copies of all templates ordered by id.
func (c *ItemCatalog) Templates() []model.ItemTemplate {
	out := make([]model.ItemTemplate, 0, len(c.items))
	for _, id := range c.IDs() {
		out = append(out, *c.items[id])
	}
	return out
}
