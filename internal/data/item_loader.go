package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/invengine/internal/model"
)

// itemFile — корневой документ YAML-каталога предметов.
type itemFile struct {
	Items []model.ItemTemplate `yaml:"items"`
}

// LoadItemCatalog читает YAML-каталог предметов из файла.
func LoadItemCatalog(path string) (*ItemCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item catalog %s: %w", path, err)
	}
	cat, err := ParseItemCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing item catalog %s: %w", path, err)
	}
	slog.Info("loaded item templates", "count", cat.Len(), "path", path)
	return cat, nil
}

// ParseItemCatalog builds a catalog from YAML bytes.
// Duplicate ids and invalid container capacities are rejected.
func ParseItemCatalog(raw []byte) (*ItemCatalog, error) {
	var doc itemFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	seen := make(map[int32]struct{}, len(doc.Items))
	for i := range doc.Items {
		tpl := &doc.Items[i]
		if tpl.ID <= 0 {
			return nil, fmt.Errorf("item #%d (%q): id must be > 0", i, tpl.Name)
		}
		if _, dup := seen[tpl.ID]; dup {
			return nil, fmt.Errorf("item %d (%q): duplicate id", tpl.ID, tpl.Name)
		}
		seen[tpl.ID] = struct{}{}
		if tpl.BagSlots < 0 || tpl.BagSlots > model.MaxBagSlots {
			return nil, fmt.Errorf("item %d (%q): bag_slots %d out of range 0..%d",
				tpl.ID, tpl.Name, tpl.BagSlots, model.MaxBagSlots)
		}
	}

	return NewItemCatalog(doc.Items...), nil
}
