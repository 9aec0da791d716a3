package model

import "context"

// TotalWeight возвращает суммарный вес всех предметов (включая сумки) в
// единицах: сумма десятых долей / 10 с округлением до ближайшего целого.
// Unresolved templates weigh nothing.
func (inv *Inventory) TotalWeight(ctx context.Context) int {
	var tenths int64
	for _, it := range inv.items {
		tpl, err := inv.template(ctx, it.ItemID)
		if err != nil {
			continue
		}
		tenths += int64(tpl.Weight)
	}
	if tenths < 0 {
		tenths = 0
	}
	return int((tenths + 5) / 10)
}

// TotalEquippedAC sums the AC of items in the equip range only.
func (inv *Inventory) TotalEquippedAC(ctx context.Context) int {
	total := 0
	for s := SlotCharm; s <= SlotAmmo; s++ {
		it, ok := inv.bySlot[s]
		if !ok {
			continue
		}
		tpl, err := inv.template(ctx, it.ItemID)
		if err != nil {
			continue
		}
		total += int(tpl.AC)
	}
	return total
}
