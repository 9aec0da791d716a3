package model

import (
	"context"
	"fmt"
)

// TransferState — состояние курсора.
type TransferState int32

const (
	TransferIdle    TransferState = iota // cursor empty
	TransferHolding                      // cursor holds exactly one item
)

// String returns human-readable transfer state name.
func (s TransferState) String() string {
	if s == TransferHolding {
		return "Holding"
	}
	return "Idle"
}

// ClickResult — результат клика по слоту.
type ClickResult int32

const (
	ClickNoop     ClickResult = iota
	ClickPickedUp             // slot item lifted onto the cursor
	ClickPlaced               // cursor item placed into an empty slot
	ClickSwapped              // cursor item and slot item exchanged
	ClickRejected             // target refused the cursor item; cursor unchanged
)

// String returns human-readable click result name.
func (r ClickResult) String() string {
	switch r {
	case ClickNoop:
		return "Noop"
	case ClickPickedUp:
		return "PickedUp"
	case ClickPlaced:
		return "Placed"
	case ClickSwapped:
		return "Swapped"
	case ClickRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// TransferState returns Holding when the cursor has an item.
func (inv *Inventory) TransferState() TransferState {
	if inv.IsOccupied(SlotCursor) {
		return TransferHolding
	}
	return TransferIdle
}

// Click обрабатывает клик по слоту (drag/drop через курсор).
//
// Idle:
//   - непустой слот → предмет на курсор (Holding); пустой → no-op.
//
// Holding:
//   - пустой слот → перемещение, если цель принимает предмет;
//   - занятый слот → обмен (одна операция, без промежуточного состояния);
//   - клик по курсору → no-op (origin не отслеживается).
//
// A container carries its bag contents whenever it changes anchor.
// Rejection leaves the cursor item in place. Item count is conserved.
func (inv *Inventory) Click(ctx context.Context, slot SlotID, v EquipValidator, who Wearer) (ClickResult, error) {
	if !IsValidSlot(slot) {
		return ClickNoop, fmt.Errorf("click on %d: %w", int32(slot), ErrInvalidSlot)
	}
	if anchor, _, ok := BagParent(slot); ok && anchor == SlotCursor {
		return ClickNoop, fmt.Errorf("click on %s: %w", slot, ErrInvalidSlot)
	}
	if slot == SlotCursor {
		return ClickNoop, nil
	}

	held, holding := inv.bySlot[SlotCursor]
	_, occupied := inv.bySlot[slot]

	if !holding {
		if !occupied {
			return ClickNoop, nil
		}
		moves := map[SlotID]SlotID{slot: SlotCursor}
		inv.carryBag(moves, slot, SlotCursor)
		if err := inv.relocate(moves); err != nil {
			return ClickNoop, fmt.Errorf("picking up %s: %w", slot, err)
		}
		return ClickPickedUp, nil
	}

	heldTpl, err := inv.template(ctx, held.ItemID)
	if err != nil {
		return ClickNoop, fmt.Errorf("resolving cursor item: %w", err)
	}
	allowed, err := inv.accepts(ctx, slot, heldTpl, v, who)
	if err != nil {
		return ClickNoop, err
	}
	if !allowed {
		return ClickRejected, nil
	}

	moves := map[SlotID]SlotID{SlotCursor: slot}
	inv.carryBag(moves, SlotCursor, slot)
	if !occupied {
		if err := inv.relocate(moves); err != nil {
			return ClickNoop, fmt.Errorf("placing cursor item into %s: %w", slot, err)
		}
		return ClickPlaced, nil
	}

	moves[slot] = SlotCursor
	inv.carryBag(moves, slot, SlotCursor)
	if err := inv.relocate(moves); err != nil {
		return ClickNoop, fmt.Errorf("swapping cursor with %s: %w", slot, err)
	}
	return ClickSwapped, nil
}

// accepts reports whether slot may receive an item of tpl.
func (inv *Inventory) accepts(ctx context.Context, slot SlotID, tpl *ItemTemplate, v EquipValidator, who Wearer) (bool, error) {
	// Containers live only in anchors.
	if tpl.IsContainer() && !IsGeneralSlot(slot) {
		return false, nil
	}

	switch {
	case IsEquipSlot(slot):
		return v == nil || v.IsAllowed(tpl, slot, who), nil

	case IsBagSlot(slot):
		anchor, idx, _ := BagParent(slot)
		bag, ok := inv.bySlot[anchor]
		if !ok {
			return false, nil
		}
		bagTpl, err := inv.template(ctx, bag.ItemID)
		if err != nil {
			return false, fmt.Errorf("resolving container in %s: %w", anchor, err)
		}
		return bagTpl.IsContainer() && idx < min(bagTpl.BagSlots, MaxBagSlots), nil

	default:
		return true, nil
	}
}

// carryBag adds moves for the bag contents of the container at from so they
// follow it to the anchor to. No-op unless both ends are anchors.
func (inv *Inventory) carryBag(moves map[SlotID]SlotID, from, to SlotID) {
	if !IsBagAnchor(from) || !IsBagAnchor(to) {
		return
	}
	fromStart, _, _ := BagRange(from, MaxBagSlots)
	toStart, _, _ := BagRange(to, MaxBagSlots)
	for _, sub := range inv.bagContents(from) {
		moves[sub] = toStart + (sub - fromStart)
	}
}
