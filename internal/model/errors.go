package model

import "errors"

// Inventory error taxonomy. Callers match with errors.Is.
var (
	ErrItemNotFound  = errors.New("item not found in catalog")
	ErrInventoryFull = errors.New("inventory full")
	ErrInvalidSlot   = errors.New("invalid slot")
	ErrSlotOccupied  = errors.New("slot occupied")
	ErrSlotEmpty     = errors.New("slot empty")
	ErrEquipRejected = errors.New("equip rejected")
)
