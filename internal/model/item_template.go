package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemTemplate — статический шаблон предмета из каталога.
// Immutable после загрузки; кэшируется по ID.
type ItemTemplate struct {
	ID    int32     `yaml:"id"`
	Name  string    `yaml:"name"`
	Class ItemClass `yaml:"class"`
	Type  ItemType  `yaml:"type"`

	// Common stats
	Weight    int32   `yaml:"weight"`     // tenths of a unit
	Price     float64 `yaml:"price"`      // copper
	StackSize int32   `yaml:"stack_size"` // <= 1 means not stackable
	NoDrop    int32   `yaml:"nodrop"`     // 0 = no-drop, otherwise tradeable
	NoRent    int32   `yaml:"norent"`     // 0 = no-rent, otherwise persists

	// Container
	BagSlots int32 `yaml:"bag_slots"`

	// Equip restrictions (bitmasks)
	Slots   uint32 `yaml:"slots"`
	Classes uint32 `yaml:"classes"`
	Races   uint32 `yaml:"races"`

	// Stats used by armor class and item scoring
	AC       int32 `yaml:"ac"`
	HP       int32 `yaml:"hp"`
	Mana     int32 `yaml:"mana"`
	Str      int32 `yaml:"str"`
	Sta      int32 `yaml:"sta"`
	Agi      int32 `yaml:"agi"`
	Dex      int32 `yaml:"dex"`
	Int      int32 `yaml:"int"`
	Wis      int32 `yaml:"wis"`
	Cha      int32 `yaml:"cha"`
	Damage   int32 `yaml:"damage"`
	Delay    int32 `yaml:"delay"`
	ReqLevel int32 `yaml:"req_level"`

	ProcEffect  int32 `yaml:"proc_effect"`
	ClickEffect int32 `yaml:"click_effect"`
}

// ItemClass определяет категорию предмета.
type ItemClass int32

const (
	ItemClassCommon ItemClass = iota
	ItemClassContainer
	ItemClassBook
)

// UnmarshalText accepts a class name ("common", "container", "book") or its number.
func (c *ItemClass) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "common", "normal":
		*c = ItemClassCommon
	case "container", "bag":
		*c = ItemClassContainer
	case "book":
		*c = ItemClassBook
	default:
		n, err := strconv.ParseInt(string(text), 10, 32)
		if err != nil {
			return fmt.Errorf("unknown item class %q", text)
		}
		*c = ItemClass(n)
	}
	return nil
}

// String returns human-readable item class name.
func (c ItemClass) String() string {
	switch c {
	case ItemClassCommon:
		return "Common"
	case ItemClassContainer:
		return "Container"
	case ItemClassBook:
		return "Book"
	default:
		return "Unknown"
	}
}

// ItemType is the equipment subtype of a common item.
type ItemType int32

const (
	ItemType1HSlash ItemType = iota
	ItemType2HSlash
	ItemType1HPiercing
	ItemType1HBlunt
	ItemType2HBlunt
	ItemTypeArchery
	_
	ItemTypeThrowingRange
	ItemTypeShield
	_
	ItemTypeArmor
	ItemTypeMisc
)

// IsContainer returns true if the template opens a bag range when placed in an anchor.
func (t *ItemTemplate) IsContainer() bool {
	return t.Class == ItemClassContainer
}

// IsStackable returns true if more than one unit fits in a single slot.
func (t *ItemTemplate) IsStackable() bool {
	return t.StackSize > 1
}

// IsNoDrop returns true for items that cannot be traded or sold.
func (t *ItemTemplate) IsNoDrop() bool {
	return t.NoDrop == 0
}

// IsTradeable returns true when both trade flags allow the item to change hands.
func (t *ItemTemplate) IsTradeable() bool {
	return t.NoDrop != 0 && t.NoRent != 0
}

// IsSellable — не контейнер и оба trade-флага разрешают продажу.
func (t *ItemTemplate) IsSellable() bool {
	return t.Class != ItemClassContainer && t.IsTradeable()
}

// IsEquippable returns true if the template is a common item with at least one equip slot.
func (t *ItemTemplate) IsEquippable() bool {
	return t.Class == ItemClassCommon && t.Slots != 0
}

// EquipSlots returns every equip slot the template's bitmask allows, ascending.
func (t *ItemTemplate) EquipSlots() []SlotID {
	var out []SlotID
	for s := SlotCharm; s <= SlotAmmo; s++ {
		if t.Slots&SlotBit(s) != 0 {
			out = append(out, s)
		}
	}
	return out
}
