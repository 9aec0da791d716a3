package model

import "fmt"

// SlotID — адрес слота в инвентаре персонажа.
// Диапазоны фиксированы и не настраиваются.
type SlotID int32

// Equip slots (Charm..Ammo). One worn item per slot.
const (
	SlotCharm SlotID = iota
	SlotEar1
	SlotHead
	SlotFace
	SlotEar2
	SlotNeck
	SlotShoulders
	SlotArms
	SlotBack
	SlotWrist1
	SlotWrist2
	SlotRange
	SlotHands
	SlotPrimary
	SlotSecondary
	SlotFinger1
	SlotFinger2
	SlotChest
	SlotLegs
	SlotFeet
	SlotWaist
	SlotPowerSource
	SlotAmmo
)

// General carry slots and the cursor.
const (
	SlotGeneral1 SlotID = iota + SlotAmmo + 1
	SlotGeneral2
	SlotGeneral3
	SlotGeneral4
	SlotGeneral5
	SlotGeneral6
	SlotGeneral7
	SlotGeneral8
	SlotCursor
)

// SlotNone marks "no slot" results.
const SlotNone SlotID = -1

const (
	// BagSlotsFirst is the first sub-slot of the bag in SlotGeneral1.
	BagSlotsFirst SlotID = 262
	// BagStride is the distance between consecutive bag ranges.
	BagStride = 10
	// MaxBagSlots is the largest container capacity the address space can hold.
	MaxBagSlots = BagStride
	// CursorBagFirst is the first sub-slot of a container held on the cursor.
	CursorBagFirst SlotID = BagSlotsFirst + BagStride*(SlotCursor-SlotGeneral1)

	generalSlotCount = int(SlotCursor - SlotGeneral1)
)

// generalSlots — порядок сканирования general-слотов (first-fit зависит от него).
var generalSlots = [generalSlotCount]SlotID{
	SlotGeneral1, SlotGeneral2, SlotGeneral3, SlotGeneral4,
	SlotGeneral5, SlotGeneral6, SlotGeneral7, SlotGeneral8,
}

// bagStart — начало bag-диапазона для каждого якоря (general-слоты + cursor).
var bagStart = map[SlotID]SlotID{
	SlotGeneral1: 262,
	SlotGeneral2: 272,
	SlotGeneral3: 282,
	SlotGeneral4: 292,
	SlotGeneral5: 302,
	SlotGeneral6: 312,
	SlotGeneral7: 322,
	SlotGeneral8: 332,
	SlotCursor:   CursorBagFirst,
}

var slotNames = [...]string{
	"Charm", "Ear1", "Head", "Face", "Ear2", "Neck", "Shoulders", "Arms",
	"Back", "Wrist1", "Wrist2", "Range", "Hands", "Primary", "Secondary",
	"Finger1", "Finger2", "Chest", "Legs", "Feet", "Waist", "PowerSource", "Ammo",
	"General1", "General2", "General3", "General4", "General5", "General6",
	"General7", "General8", "Cursor",
}

// String returns a human-readable slot name; bag sub-slots render as "General2[3]".
func (s SlotID) String() string {
	if s >= 0 && int(s) < len(slotNames) {
		return slotNames[s]
	}
	if anchor, idx, ok := BagParent(s); ok {
		return fmt.Sprintf("%s[%d]", anchor, idx)
	}
	return fmt.Sprintf("Slot(%d)", int32(s))
}

// GeneralSlots returns the general carry slots in scan order.
func GeneralSlots() []SlotID {
	out := make([]SlotID, len(generalSlots))
	copy(out, generalSlots[:])
	return out
}

// IsEquipSlot reports whether slot is a worn-equipment slot.
func IsEquipSlot(slot SlotID) bool {
	return slot >= SlotCharm && slot <= SlotAmmo
}

// IsGeneralSlot reports whether slot is one of the general carry slots.
func IsGeneralSlot(slot SlotID) bool {
	return slot >= SlotGeneral1 && slot <= SlotGeneral8
}

// IsBagAnchor reports whether a container placed in slot opens a bag range.
func IsBagAnchor(slot SlotID) bool {
	_, ok := bagStart[slot]
	return ok
}

// BagRange возвращает диапазон [start, start+bagSlots) для контейнера в anchor.
//
// Parameters:
//   - anchor: general slot или SlotCursor
//   - bagSlots: вместимость контейнера (обрезается до MaxBagSlots)
//
// Returns ok=false если anchor не является якорем bag-диапазона.
func BagRange(anchor SlotID, bagSlots int32) (start, end SlotID, ok bool) {
	start, ok = bagStart[anchor]
	if !ok {
		return SlotNone, SlotNone, false
	}
	if bagSlots < 0 {
		bagSlots = 0
	}
	if bagSlots > MaxBagSlots {
		bagSlots = MaxBagSlots
	}
	return start, start + SlotID(bagSlots), true
}

// BagParent maps a bag sub-slot back to its anchor and zero-based index.
func BagParent(slot SlotID) (anchor SlotID, index int32, ok bool) {
	if slot < BagSlotsFirst || slot >= CursorBagFirst+BagStride {
		return SlotNone, 0, false
	}
	off := slot - BagSlotsFirst
	anchor = SlotGeneral1 + off/BagStride
	return anchor, int32(off % BagStride), true
}

// IsBagSlot reports whether slot addresses a sub-slot of some anchor's bag.
func IsBagSlot(slot SlotID) bool {
	_, _, ok := BagParent(slot)
	return ok
}

// IsValidSlot reports whether slot belongs to any defined range.
func IsValidSlot(slot SlotID) bool {
	return IsEquipSlot(slot) || IsGeneralSlot(slot) || slot == SlotCursor || IsBagSlot(slot)
}

// SlotBit returns the equip-restriction bitmask for an equip slot (0 otherwise).
func SlotBit(slot SlotID) uint32 {
	if !IsEquipSlot(slot) {
		return 0
	}
	return 1 << uint32(slot)
}
