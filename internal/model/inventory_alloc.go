package model

import (
	"context"
	"fmt"
	"log/slog"
)

// EquipValidator решает, можно ли надеть шаблон в equip-слот.
// Таблица правил внешняя (см. game/equip).
type EquipValidator interface {
	IsAllowed(tpl *ItemTemplate, slot SlotID, who Wearer) bool
}

// FindFreeSlot returns the first free slot in first-fit order:
//  1. general slots in declared order;
//  2. then, in general-slot order, the sub-slots of each container, ascending.
//
// Duplicate slot entries are repaired (first-seen wins) before the scan.
// Returns ok=false when nothing is free. Containers whose template cannot be
// resolved are skipped.
func (inv *Inventory) FindFreeSlot(ctx context.Context) (SlotID, bool) {
	if dropped := inv.repair(); dropped > 0 {
		slog.Warn("inventory slot invariant repaired", "owner", inv.ownerID, "dropped", dropped)
	}

	for _, s := range generalSlots {
		if _, busy := inv.bySlot[s]; !busy {
			return s, true
		}
	}

	for _, s := range generalSlots {
		bag := inv.bySlot[s]
		tpl, err := inv.template(ctx, bag.ItemID)
		if err != nil {
			slog.Debug("skipping unresolved general slot item", "slot", s, "item", bag.ItemID, "error", err)
			continue
		}
		if !tpl.IsContainer() {
			continue
		}
		start, end, _ := BagRange(s, tpl.BagSlots)
		for sub := start; sub < end; sub++ {
			if _, busy := inv.bySlot[sub]; !busy {
				return sub, true
			}
		}
	}

	return SlotNone, false
}

// IsGeneralFull reports whether every general slot is occupied.
func (inv *Inventory) IsGeneralFull() bool {
	for _, s := range generalSlots {
		if _, busy := inv.bySlot[s]; !busy {
			return false
		}
	}
	return true
}

// PlaceResult describes the outcome of Place.
type PlaceResult struct {
	Template *ItemTemplate
	Slots    []SlotID // slots that received units (stack top-ups included)
	Placed   int32
	Leftover int32 // units that found no room
}

// Place добавляет quantity единиц предмета в инвентарь (loot / покупка).
//
// Stackable items top up existing stacks (slot order) before new slots are
// allocated. Containers are only placed in general slots.
//
// Returns:
//   - error wrapping ErrItemNotFound: template unknown, inventory untouched
//   - error wrapping ErrInventoryFull: Leftover > 0; units already placed stay
func (inv *Inventory) Place(ctx context.Context, itemID int32, quantity int32) (PlaceResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	tpl, err := inv.template(ctx, itemID)
	if err != nil {
		return PlaceResult{}, fmt.Errorf("placing item %d: %w", itemID, err)
	}
	return inv.PlaceTemplate(ctx, tpl, quantity)
}

// PlaceTemplate is Place with an already resolved template.
func (inv *Inventory) PlaceTemplate(ctx context.Context, tpl *ItemTemplate, quantity int32) (PlaceResult, error) {
	if tpl == nil {
		return PlaceResult{}, fmt.Errorf("placing item: %w", ErrItemNotFound)
	}
	if quantity <= 0 {
		quantity = 1
	}

	res := PlaceResult{Template: tpl}
	remaining := quantity

	if tpl.IsStackable() {
		remaining = inv.topUpStacks(tpl, remaining, &res)
	}

	for remaining > 0 {
		slot, ok := inv.FindFreeSlot(ctx)
		if !ok || (tpl.IsContainer() && !IsGeneralSlot(slot)) {
			break
		}

		units := int32(1)
		if tpl.IsStackable() {
			units = min(remaining, tpl.StackSize)
		}
		if err := inv.add(NewItem(tpl.ID, slot, units)); err != nil {
			return res, fmt.Errorf("placing item %d: %w", tpl.ID, err)
		}
		res.Slots = append(res.Slots, slot)
		res.Placed += units
		remaining -= units
	}

	res.Leftover = remaining
	if remaining > 0 {
		return res, fmt.Errorf("placing %d x item %d: %w", remaining, tpl.ID, ErrInventoryFull)
	}
	return res, nil
}

// topUpStacks fills existing stacks of tpl outside equip slots and the cursor.
func (inv *Inventory) topUpStacks(tpl *ItemTemplate, remaining int32, res *PlaceResult) int32 {
	for _, it := range inv.Items() {
		if remaining == 0 {
			break
		}
		if it.ItemID != tpl.ID || IsEquipSlot(it.Slot) || it.Slot == SlotCursor {
			continue
		}
		room := tpl.StackSize - it.Charges
		if room <= 0 {
			continue
		}
		take := min(room, remaining)
		inv.bySlot[it.Slot].Charges += take
		res.Slots = append(res.Slots, it.Slot)
		res.Placed += take
		remaining -= take
	}
	return remaining
}

// EquipResult describes the outcome of EquipNew / EquipStack.
type EquipResult struct {
	Slot  SlotID
	Units int32 // units placed into Slot
	// MovedTo is where the previously equipped item went (SlotNone if the slot was empty).
	MovedTo SlotID
	// Evicted is the previously equipped item when no free slot could take it.
	// It is no longer in the inventory; the caller decides to sell or drop it.
	Evicted *Item
}

// EquipNew places a single newly granted unit straight into an equip slot.
// A previous occupant moves to the first free slot, or is evicted when the
// inventory is full.
func (inv *Inventory) EquipNew(ctx context.Context, tpl *ItemTemplate, slot SlotID, v EquipValidator, who Wearer) (EquipResult, error) {
	return inv.EquipStack(ctx, tpl, slot, 1, v, who)
}

// EquipStack is EquipNew for up to units of one template. Stackable items
// fill the equip slot up to StackSize; anything else takes one unit.
// EquipResult.Units reports how many units went in.
func (inv *Inventory) EquipStack(ctx context.Context, tpl *ItemTemplate, slot SlotID, units int32, v EquipValidator, who Wearer) (EquipResult, error) {
	res := EquipResult{Slot: slot, MovedTo: SlotNone}
	if tpl == nil {
		return res, fmt.Errorf("equipping into %s: %w", slot, ErrItemNotFound)
	}
	if !IsEquipSlot(slot) {
		return res, fmt.Errorf("equipping item %d into %s: %w", tpl.ID, slot, ErrInvalidSlot)
	}
	if v != nil && !v.IsAllowed(tpl, slot, who) {
		return res, fmt.Errorf("equipping item %d into %s: %w", tpl.ID, slot, ErrEquipRejected)
	}

	if inv.IsOccupied(slot) {
		if free, ok := inv.FindFreeSlot(ctx); ok {
			if err := inv.relocate(map[SlotID]SlotID{slot: free}); err != nil {
				return res, fmt.Errorf("moving equipped item out of %s: %w", slot, err)
			}
			res.MovedTo = free
		} else {
			old, _ := inv.remove(slot)
			res.Evicted = &old
		}
	}

	n := int32(1)
	if tpl.IsStackable() {
		n = min(max(units, 1), tpl.StackSize)
	}
	if err := inv.add(NewItem(tpl.ID, slot, n)); err != nil {
		return res, fmt.Errorf("equipping item %d: %w", tpl.ID, err)
	}
	res.Units = n
	return res, nil
}
