// Package loot grants looted items and coin to a character.
//
// A grant runs in two phases. Resolve fetches every distinct template through
// the catalog in parallel and may be called from any goroutine. Apply mutates
// the inventory and purse and must run on the character's single writer.
package loot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/invengine/internal/data"
	"github.com/udisondev/invengine/internal/game/equip"
	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/notify"
)

// Grant — одна позиция лута.
type Grant struct {
	ItemID   int32 `yaml:"item"`
	Quantity int32 `yaml:"quantity"` // <= 0 means 1
}

// CurrencyDelta — начисление монет в кошелёк.
type CurrencyDelta struct {
	Location model.PurseLocation
	Amount   model.Ledger
}

// Options configures a Processor.
type Options struct {
	AutoEquip bool
	AutoSell  bool
	Carry     model.CarryMode
	Resolve   data.ResolveOptions
}

// Target is the mutable state Apply works on.
type Target struct {
	Inventory *model.Inventory
	Purse     *model.Purse
	Wearer    model.Wearer
}

// Outcome summarizes an Apply pass.
type Outcome struct {
	Equipped []model.SlotID
	Placed   []model.SlotID
	Sold     []int32 // item ids sold because nothing could hold them
	Dropped  []int32 // item ids discarded
	Skipped  []int32 // grants whose template could not be resolved
	Credited model.Ledger
}

// Processor applies loot grants.
type Processor struct {
	catalog   model.Catalog
	lookup    model.Catalog // catalog bounded by opts.Resolve.Timeout, used inside Apply
	validator model.EquipValidator
	sink      notify.Sink
	opts      Options
}

// NewProcessor creates a loot processor. A nil sink discards notifications.
func NewProcessor(catalog model.Catalog, validator model.EquipValidator, sink notify.Sink, opts Options) *Processor {
	if sink == nil {
		sink = notify.Discard{}
	}
	if validator == nil {
		validator = equip.NewValidator()
	}
	return &Processor{
		catalog:   catalog,
		lookup:    data.WithLookupTimeout(catalog, opts.Resolve.Timeout),
		validator: validator,
		sink:      sink,
		opts:      opts,
	}
}

// Resolve is phase 1: fetch templates for all grants concurrently.
// Failed lookups are simply absent from the result.
func (p *Processor) Resolve(ctx context.Context, grants []Grant) (map[int32]*model.ItemTemplate, error) {
	ids := make([]int32, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.ItemID)
	}
	resolved, err := data.ResolveAll(ctx, p.catalog, ids, p.opts.Resolve)
	if err != nil {
		return nil, fmt.Errorf("resolving loot: %w", err)
	}
	return resolved, nil
}

// Apply is phase 2: grants are processed in arrival order. Equippable items go
// one unit per equip slot; a stackable one fills its slot up to StackSize.
func (p *Processor) Apply(ctx context.Context, t Target, grants []Grant, resolved map[int32]*model.ItemTemplate) Outcome {
	var out Outcome
	var credit int64

	for _, g := range grants {
		tpl, ok := resolved[g.ItemID]
		if !ok {
			slog.Warn("loot grant skipped, template unresolved", "item", g.ItemID)
			out.Skipped = append(out.Skipped, g.ItemID)
			continue
		}
		qty := max(g.Quantity, 1)

		if p.opts.AutoEquip && equip.CanWear(p.validator, tpl, t.Wearer) {
			for qty > 0 {
				slot, ok := p.equipTarget(ctx, t, tpl)
				if !ok {
					break
				}
				res, err := t.Inventory.EquipStack(ctx, tpl, slot, qty, p.validator, t.Wearer)
				if err != nil {
					slog.Warn("auto-equip failed", "item", tpl.ID, "slot", slot, "error", err)
					break
				}
				out.Equipped = append(out.Equipped, slot)
				if res.Evicted != nil {
					credit += p.overflow(ctx, *res.Evicted, &out)
				}
				qty -= res.Units
			}
		}
		if qty == 0 {
			continue
		}

		res, err := t.Inventory.PlaceTemplate(ctx, tpl, qty)
		out.Placed = append(out.Placed, res.Slots...)
		if err != nil && !errors.Is(err, model.ErrInventoryFull) {
			slog.Warn("loot placement failed", "item", tpl.ID, "error", err)
		}
		if res.Leftover > 0 {
			credit += p.overflowNew(tpl, res.Leftover, &out)
		}
	}

	if credit > 0 && t.Purse != nil {
		out.Credited = model.Normalize(credit)
		t.Purse.Carried = model.Merge(t.Purse.Carried, out.Credited, p.opts.Carry)
	}
	return out
}

// ApplyCurrency merges a coin delta into the purse ledger at d.Location.
func ApplyCurrency(purse *model.Purse, d CurrencyDelta, mode model.CarryMode) error {
	l := purse.At(d.Location)
	if l == nil {
		return fmt.Errorf("applying currency: unknown purse location %d", d.Location)
	}
	*l = model.Merge(*l, d.Amount, mode)
	return nil
}

// equipTarget picks the slot for tpl: the first empty allowed equip slot, else
// the slot whose occupant gains the most score from the swap. ok=false when
// nothing is empty and nothing is an upgrade.
func (p *Processor) equipTarget(ctx context.Context, t Target, tpl *model.ItemTemplate) (model.SlotID, bool) {
	var allowed []model.SlotID
	for _, s := range tpl.EquipSlots() {
		if p.validator.IsAllowed(tpl, s, t.Wearer) {
			allowed = append(allowed, s)
		}
	}

	for _, s := range allowed {
		if !t.Inventory.IsOccupied(s) {
			return s, true
		}
	}

	newScore := equip.Score(tpl, t.Wearer.Class)
	best, bestDiff := model.SlotNone, 0
	for _, s := range allowed {
		cur, _ := t.Inventory.Item(s)
		curTpl, err := p.lookup.ItemByID(ctx, cur.ItemID)
		if err != nil {
			continue
		}
		if diff := newScore - equip.Score(curTpl, t.Wearer.Class); diff > bestDiff {
			best, bestDiff = s, diff
		}
	}
	return best, best != model.SlotNone
}

// overflow disposes of an item evicted from an equip slot. Returns copper to credit.
func (p *Processor) overflow(ctx context.Context, it model.Item, out *Outcome) int64 {
	tpl, err := p.lookup.ItemByID(ctx, it.ItemID)
	name := fmt.Sprintf("item %d", it.ItemID)
	var value int64
	if err == nil {
		name = tpl.Name
		value = model.SellValue(tpl, it.Charges)
	}
	return p.dispose(it.ItemID, name, value, out)
}

// overflowNew disposes of units that did not fit. Returns copper to credit.
func (p *Processor) overflowNew(tpl *model.ItemTemplate, units int32, out *Outcome) int64 {
	return p.dispose(tpl.ID, tpl.Name, model.SellValue(tpl, 1)*int64(units), out)
}

func (p *Processor) dispose(itemID int32, name string, value int64, out *Outcome) int64 {
	if p.opts.AutoSell && value > 0 {
		out.Sold = append(out.Sold, itemID)
		p.sink.Notify(notify.KindInfo, fmt.Sprintf("Inventory full, sold %s for %s", name, model.Normalize(value)))
		return value
	}
	out.Dropped = append(out.Dropped, itemID)
	p.sink.Notify(notify.KindWarning, "Inventory full, item dropped: "+name)
	return 0
}
