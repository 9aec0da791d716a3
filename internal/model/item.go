package model

// MaxAugments is the number of augment sockets an item instance can carry.
const MaxAugments = 6

// Item — экземпляр предмета в инвентаре персонажа.
// Держит только ссылку на шаблон (ItemID); детали шаблона берутся из каталога.
//
// Inventory отдаёт Item по значению: изменять слот можно только через
// allocation и transfer операции инвентаря.
type Item struct {
	ItemID     int32
	Slot       SlotID
	Charges    int32
	Augments   [MaxAugments]int32
	CustomData map[string]string
}

// NewItem creates an item instance for the given template id and slot.
func NewItem(itemID int32, slot SlotID, charges int32) Item {
	if charges <= 0 {
		charges = 1
	}
	return Item{
		ItemID:  itemID,
		Slot:    slot,
		Charges: charges,
	}
}

// HasAugments reports whether any augment socket is filled.
func (i Item) HasAugments() bool {
	for _, a := range i.Augments {
		if a != 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy (CustomData included).
func (i Item) Clone() Item {
	out := i
	if i.CustomData != nil {
		out.CustomData = make(map[string]string, len(i.CustomData))
		for k, v := range i.CustomData {
			out.CustomData[k] = v
		}
	}
	return out
}
