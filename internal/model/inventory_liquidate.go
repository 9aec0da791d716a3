package model

import (
	"context"
	"log/slog"
	"math"
)

// LiquidationReport lists what a Liquidate pass did.
type LiquidationReport struct {
	Sold        []Item
	Deleted     []Item
	Skipped     []SlotID // unresolved templates
	TotalCopper int64
}

// Liquidate продаёт всё продаваемое из general-слотов и их сумок.
//
// Equip slots and the cursor are never touched. Sellable items (not a
// container, both trade flags allowed) are removed and their floored price is
// credited; stackable items are credited per unit. When deleteNonSellable is
// set, no-drop items are removed with zero credit. Items with unknown
// templates are skipped.
//
// Returns the normalized delta to merge into the character's ledger; the
// ledger itself is not touched.
func (inv *Inventory) Liquidate(ctx context.Context, deleteNonSellable bool) (Ledger, LiquidationReport) {
	var rep LiquidationReport

	for _, g := range generalSlots {
		it, ok := inv.bySlot[g]
		if !ok {
			continue
		}
		tpl, err := inv.template(ctx, it.ItemID)
		if err != nil {
			slog.Warn("liquidation skipped unresolved item", "owner", inv.ownerID, "slot", g, "item", it.ItemID, "error", err)
			rep.Skipped = append(rep.Skipped, g)
			continue
		}

		if !tpl.IsContainer() {
			inv.liquidateSlot(g, tpl, deleteNonSellable, &rep)
			continue
		}

		start, end, _ := BagRange(g, tpl.BagSlots)
		for sub := start; sub < end; sub++ {
			bagItem, ok := inv.bySlot[sub]
			if !ok {
				continue
			}
			bagTpl, err := inv.template(ctx, bagItem.ItemID)
			if err != nil {
				slog.Warn("liquidation skipped unresolved item", "owner", inv.ownerID, "slot", sub, "item", bagItem.ItemID, "error", err)
				rep.Skipped = append(rep.Skipped, sub)
				continue
			}
			inv.liquidateSlot(sub, bagTpl, deleteNonSellable, &rep)
		}
	}

	return Normalize(rep.TotalCopper), rep
}

func (inv *Inventory) liquidateSlot(slot SlotID, tpl *ItemTemplate, deleteNonSellable bool, rep *LiquidationReport) {
	switch {
	case tpl.IsSellable():
		it, _ := inv.remove(slot)
		rep.TotalCopper += SellValue(tpl, it.Charges)
		rep.Sold = append(rep.Sold, it)

	case deleteNonSellable && tpl.IsNoDrop():
		it, _ := inv.remove(slot)
		rep.Deleted = append(rep.Deleted, it)
	}
}

// SellValue returns the copper a Liquidate pass would credit for a single
// template (0 if not sellable).
func SellValue(tpl *ItemTemplate, charges int32) int64 {
	if tpl == nil || !tpl.IsSellable() || tpl.Price <= 0 {
		return 0
	}
	units := int64(1)
	if tpl.IsStackable() && charges > 1 {
		units = int64(charges)
	}
	return int64(math.Floor(tpl.Price)) * units
}
