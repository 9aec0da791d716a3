package model

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Catalog — источник шаблонов предметов.
// Промах должен оборачивать ErrItemNotFound.
type Catalog interface {
	ItemByID(ctx context.Context, itemID int32) (*ItemTemplate, error)
}

// Inventory — коллекция предметов персонажа (equip + general + bags + cursor).
//
// Инварианты:
//   - не более одного Item на SlotID;
//   - общее количество Item сохраняется при любом transfer;
//   - Item меняет слот только через allocation (Place) и transfer (Click).
//
// Inventory не потокобезопасен: все вызовы должны идти из одного писателя
// (см. character.Holder).
type Inventory struct {
	ownerID int64

	items  []*Item          // arrival order; first-seen wins on duplicate slots
	bySlot map[SlotID]*Item // index over items

	catalog Catalog
}

// NewInventory создаёт инвентарь владельца с заданным каталогом.
// Повторяющиеся слоты в items исправляются (first-seen wins).
func NewInventory(ownerID int64, catalog Catalog, items ...Item) *Inventory {
	inv := &Inventory{
		ownerID: ownerID,
		items:   make([]*Item, 0, len(items)),
		bySlot:  make(map[SlotID]*Item, len(items)),
		catalog: catalog,
	}
	for i := range items {
		it := items[i].Clone()
		inv.items = append(inv.items, &it)
	}
	inv.repair()
	return inv
}

// OwnerID возвращает character ID владельца.
func (inv *Inventory) OwnerID() int64 {
	return inv.ownerID
}

// Catalog returns the catalog the inventory resolves templates through.
func (inv *Inventory) Catalog() Catalog {
	return inv.catalog
}

// repair drops entries whose slot is already taken by an earlier entry.
// Returns the number of dropped duplicates.
func (inv *Inventory) repair() int {
	if len(inv.bySlot) == len(inv.items) {
		return 0
	}

	clear(inv.bySlot)
	kept := inv.items[:0]
	dropped := 0
	for _, it := range inv.items {
		if first, dup := inv.bySlot[it.Slot]; dup {
			slog.Warn("duplicate inventory slot discarded",
				"owner", inv.ownerID,
				"slot", it.Slot,
				"kept_item", first.ItemID,
				"dropped_item", it.ItemID)
			dropped++
			continue
		}
		inv.bySlot[it.Slot] = it
		kept = append(kept, it)
	}
	for i := len(kept); i < len(inv.items); i++ {
		inv.items[i] = nil
	}
	inv.items = kept
	return dropped
}

// Item returns a copy of the item in slot.
func (inv *Inventory) Item(slot SlotID) (Item, bool) {
	it, ok := inv.bySlot[slot]
	if !ok {
		return Item{}, false
	}
	return it.Clone(), true
}

// IsOccupied reports whether slot holds an item.
func (inv *Inventory) IsOccupied(slot SlotID) bool {
	_, ok := inv.bySlot[slot]
	return ok
}

// Items возвращает копии всех предметов, отсортированные по слоту.
func (inv *Inventory) Items() []Item {
	out := make([]Item, 0, len(inv.items))
	for _, it := range inv.items {
		out = append(out, it.Clone())
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Slot < out[b].Slot })
	return out
}

// EquippedItems returns copies of the items in the equip range.
func (inv *Inventory) EquippedItems() []Item {
	var out []Item
	for s := SlotCharm; s <= SlotAmmo; s++ {
		if it, ok := inv.bySlot[s]; ok {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Cursor returns the item held on the cursor, if any.
func (inv *Inventory) Cursor() (Item, bool) {
	return inv.Item(SlotCursor)
}

// Count возвращает количество предметов вне equip-слотов.
func (inv *Inventory) Count() int {
	n := 0
	for _, it := range inv.items {
		if !IsEquipSlot(it.Slot) {
			n++
		}
	}
	return n
}

// TotalCount возвращает общее количество предметов (включая equipped).
func (inv *Inventory) TotalCount() int {
	return len(inv.items)
}

// FindItemByItemID returns the first item (in slot order) with the given template id.
func (inv *Inventory) FindItemByItemID(itemID int32) (Item, bool) {
	for _, it := range inv.Items() {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

// template resolves the template of an item via the catalog.
func (inv *Inventory) template(ctx context.Context, itemID int32) (*ItemTemplate, error) {
	if inv.catalog == nil {
		return nil, fmt.Errorf("item %d: %w (no catalog)", itemID, ErrItemNotFound)
	}
	return inv.catalog.ItemByID(ctx, itemID)
}

// add inserts a new item into a free slot.
func (inv *Inventory) add(it Item) error {
	if _, busy := inv.bySlot[it.Slot]; busy {
		return fmt.Errorf("adding item %d to %s: %w", it.ItemID, it.Slot, ErrSlotOccupied)
	}
	p := &it
	inv.items = append(inv.items, p)
	inv.bySlot[it.Slot] = p
	return nil
}

// remove deletes the item in slot and returns it.
func (inv *Inventory) remove(slot SlotID) (Item, bool) {
	it, ok := inv.bySlot[slot]
	if !ok {
		return Item{}, false
	}
	delete(inv.bySlot, slot)
	for i, p := range inv.items {
		if p == it {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			break
		}
	}
	return *it, true
}

// relocate applies a batch of slot reassignments as one step.
// Every source must be occupied; every destination must be free after the
// batch's sources are vacated. On error nothing changes.
func (inv *Inventory) relocate(moves map[SlotID]SlotID) error {
	moving := make(map[SlotID]*Item, len(moves))
	for from := range moves {
		it, ok := inv.bySlot[from]
		if !ok {
			return fmt.Errorf("relocating %s: %w", from, ErrSlotEmpty)
		}
		moving[from] = it
	}
	seen := make(map[SlotID]struct{}, len(moves))
	for from, to := range moves {
		if _, dup := seen[to]; dup {
			return fmt.Errorf("relocating %s to %s: %w", from, to, ErrSlotOccupied)
		}
		seen[to] = struct{}{}
		if _, busy := inv.bySlot[to]; busy {
			if _, vacated := moves[to]; !vacated {
				return fmt.Errorf("relocating %s to %s: %w", from, to, ErrSlotOccupied)
			}
		}
	}

	for from := range moves {
		delete(inv.bySlot, from)
	}
	for from, it := range moving {
		it.Slot = moves[from]
		inv.bySlot[it.Slot] = it
	}
	return nil
}

// bagContents returns the occupied sub-slots of the container at anchor,
// whatever the container's current capacity.
func (inv *Inventory) bagContents(anchor SlotID) []SlotID {
	start, end, ok := BagRange(anchor, MaxBagSlots)
	if !ok {
		return nil
	}
	var out []SlotID
	for s := start; s < end; s++ {
		if _, busy := inv.bySlot[s]; busy {
			out = append(out, s)
		}
	}
	return out
}

// Remove deletes the item in slot (explicit destroy). Items inside a container
// removed from an anchor are destroyed with it.
//
// Returns the removed items (container first).
func (inv *Inventory) Remove(slot SlotID) ([]Item, error) {
	if !IsValidSlot(slot) {
		return nil, fmt.Errorf("removing %d: %w", int32(slot), ErrInvalidSlot)
	}
	it, ok := inv.remove(slot)
	if !ok {
		return nil, fmt.Errorf("removing %s: %w", slot, ErrSlotEmpty)
	}
	out := []Item{it}
	if IsBagAnchor(slot) {
		for _, sub := range inv.bagContents(slot) {
			bagItem, _ := inv.remove(sub)
			out = append(out, bagItem)
		}
	}
	return out, nil
}
