package character

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/invengine/internal/game/equip"
	"github.com/udisondev/invengine/internal/game/loot"
	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/notify"
)

// Options configures a Character.
type Options struct {
	QueueSize int
	Carry     model.CarryMode
}

// Deps — внешние коллабораторы персонажа.
type Deps struct {
	Loot      *loot.Processor      // required for Grant
	Validator model.EquipValidator // nil → equip.NewValidator()
	Sink      notify.Sink          // nil → notify.Discard
}

// Character — фасад операций над инвентарём персонажа.
// Every operation is queued on the embedded Holder.
type Character struct {
	*Holder

	loot      *loot.Processor
	validator model.EquipValidator
	sink      notify.Sink
	carry     model.CarryMode
}

// New creates a character around state and starts its mutation queue.
func New(id int64, state *State, deps Deps, opts Options) *Character {
	if deps.Validator == nil {
		deps.Validator = equip.NewValidator()
	}
	if deps.Sink == nil {
		deps.Sink = notify.Discard{}
	}
	return &Character{
		Holder:    NewHolder(id, state, opts.QueueSize),
		loot:      deps.Loot,
		validator: deps.Validator,
		sink:      deps.Sink,
		carry:     opts.Carry,
	}
}

// Click forwards a slot click to the transfer state machine.
func (c *Character) Click(ctx context.Context, slot model.SlotID) (model.ClickResult, error) {
	var (
		res    model.ClickResult
		runErr error
	)
	err := c.Do(ctx, func(ctx context.Context, s *State) {
		res, runErr = s.Inventory.Click(ctx, slot, c.validator, s.Wearer)
		if res == model.ClickRejected {
			c.sink.Notify(notify.KindWarning, fmt.Sprintf("Cannot place that item in %s", slot))
		}
	})
	if err != nil {
		return model.ClickNoop, err
	}
	if runErr != nil {
		return res, fmt.Errorf("character %d click: %w", c.id, runErr)
	}
	return res, nil
}

// SellResult is the outcome of Sell.
type SellResult struct {
	Delta  model.Ledger
	Report model.LiquidationReport
	Purse  model.Ledger // carried ledger after the merge
}

// Sell liquidates general slots and bags and merges the proceeds into the
// carried ledger.
func (c *Character) Sell(ctx context.Context, deleteNonSellable bool) (SellResult, error) {
	var res SellResult
	err := c.Do(ctx, func(ctx context.Context, s *State) {
		res.Delta, res.Report = s.Inventory.Liquidate(ctx, deleteNonSellable)
		s.Purse.Carried = model.Merge(s.Purse.Carried, res.Delta, c.carry)
		res.Purse = s.Purse.Carried

		if n := len(res.Report.Sold); n > 0 {
			c.sink.Notify(notify.KindInfo, fmt.Sprintf("Sold %d items for %s", n, res.Delta))
		}
		if n := len(res.Report.Deleted); n > 0 {
			c.sink.Notify(notify.KindInfo, fmt.Sprintf("Destroyed %d no-drop items", n))
		}
		slog.Info("inventory liquidated",
			"character", c.id,
			"sold", len(res.Report.Sold),
			"deleted", len(res.Report.Deleted),
			"skipped", len(res.Report.Skipped),
			"copper", res.Report.TotalCopper)
	})
	return res, err
}

// Grant resolves loot templates in parallel, then applies the grants as one
// queued mutation.
func (c *Character) Grant(ctx context.Context, grants []loot.Grant) (loot.Outcome, error) {
	if c.loot == nil {
		return loot.Outcome{}, fmt.Errorf("character %d grant: no loot processor", c.id)
	}
	resolved, err := c.loot.Resolve(ctx, grants)
	if err != nil {
		return loot.Outcome{}, fmt.Errorf("character %d grant: %w", c.id, err)
	}

	var out loot.Outcome
	err = c.Do(ctx, func(ctx context.Context, s *State) {
		out = c.loot.Apply(ctx, loot.Target{
			Inventory: s.Inventory,
			Purse:     &s.Purse,
			Wearer:    s.Wearer,
		}, grants, resolved)
	})
	return out, err
}

// ApplyCurrency merges a coin delta into the purse.
func (c *Character) ApplyCurrency(ctx context.Context, d loot.CurrencyDelta) error {
	var runErr error
	err := c.Do(ctx, func(_ context.Context, s *State) {
		runErr = loot.ApplyCurrency(&s.Purse, d, c.carry)
	})
	if err != nil {
		return err
	}
	return runErr
}

// Place adds quantity units of itemID through the allocation engine (no auto-sell).
func (c *Character) Place(ctx context.Context, itemID, quantity int32) (model.PlaceResult, error) {
	var (
		res    model.PlaceResult
		runErr error
	)
	err := c.Do(ctx, func(ctx context.Context, s *State) {
		res, runErr = s.Inventory.Place(ctx, itemID, quantity)
	})
	if err != nil {
		return res, err
	}
	return res, runErr
}

// Remove destroys the item in slot (and the contents of a removed container).
func (c *Character) Remove(ctx context.Context, slot model.SlotID) ([]model.Item, error) {
	var (
		removed []model.Item
		runErr  error
	)
	err := c.Do(ctx, func(_ context.Context, s *State) {
		removed, runErr = s.Inventory.Remove(slot)
	})
	if err != nil {
		return nil, err
	}
	return removed, runErr
}

// Weight returns the total carried weight.
func (c *Character) Weight(ctx context.Context) (int, error) {
	var w int
	err := c.Do(ctx, func(ctx context.Context, s *State) {
		w = s.Inventory.TotalWeight(ctx)
	})
	return w, err
}

// ArmorClass returns the summed AC of equipped items.
func (c *Character) ArmorClass(ctx context.Context) (int, error) {
	var ac int
	err := c.Do(ctx, func(ctx context.Context, s *State) {
		ac = s.Inventory.TotalEquippedAC(ctx)
	})
	return ac, err
}
