package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/invengine/internal/config"
	"github.com/udisondev/invengine/internal/data"
	"github.com/udisondev/invengine/internal/db"
	"github.com/udisondev/invengine/internal/game/character"
	"github.com/udisondev/invengine/internal/game/equip"
	"github.com/udisondev/invengine/internal/game/loot"
	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/notify"
)

// scenario — YAML-описание персонажей и шагов, которые над ними выполняются.
// Characters run concurrently; steps of one character run in order.
type scenario struct {
	Characters []characterSpec `yaml:"characters"`
}

type characterSpec struct {
	ID     int64        `yaml:"id"`
	Wearer model.Wearer `yaml:"wearer"`
	Purse  model.Purse  `yaml:"purse"`
	Items  []itemSpec   `yaml:"items"`
	Load   bool         `yaml:"load"` // start from the stored inventory instead of Items/Purse
	Save   bool         `yaml:"save"` // persist the final state
	Steps  []step       `yaml:"steps"`
}

type itemSpec struct {
	Item    int32        `yaml:"item"`
	Slot    model.SlotID `yaml:"slot"`
	Charges int32        `yaml:"charges"`
}

// step — ровно одно из полей должно быть заполнено.
type step struct {
	Loot     []loot.Grant  `yaml:"loot"`
	Click    *model.SlotID `yaml:"click"`
	Sell     *sellStep     `yaml:"sell"`
	Currency *currencyStep `yaml:"currency"`
	Place    *loot.Grant   `yaml:"place"`
	Remove   *model.SlotID `yaml:"remove"`
}

type sellStep struct {
	DeleteNoDrop bool `yaml:"delete_nodrop"`
}

type currencyStep struct {
	Location string       `yaml:"location"` // carried|bank|cursor
	Amount   model.Ledger `yaml:"amount"`
}

func loadScenario(path string) (scenario, error) {
	var sc scenario
	raw, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return sc, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return sc, nil
}

func (sc scenario) needsStore() bool {
	for _, c := range sc.Characters {
		if c.Load || c.Save {
			return true
		}
	}
	return false
}

func parseLocation(s string) (model.PurseLocation, error) {
	switch strings.ToLower(s) {
	case "", "carried":
		return model.PurseCarried, nil
	case "bank":
		return model.PurseBank, nil
	case "cursor":
		return model.PurseCursor, nil
	default:
		return 0, fmt.Errorf("unknown purse location %q", s)
	}
}

func runScenario(ctx context.Context, cfg config.Engine, path string) error {
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	catalog, database, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	if database == nil && sc.needsStore() {
		if database, err = connect(ctx, cfg); err != nil {
			return err
		}
	}
	if database != nil {
		defer database.Close()
	}

	carry, _ := cfg.CarryMode()
	validator := equip.NewValidator()
	// lookups made by inventory code inside a character mutation
	bounded := data.WithLookupTimeout(catalog, cfg.Catalog.FetchTimeout)

	g, gctx := errgroup.WithContext(ctx)
	for _, spec := range sc.Characters {
		g.Go(func() error {
			sink := notify.Log{Logger: slog.Default().With("character", spec.ID)}
			proc := loot.NewProcessor(catalog, validator, sink, loot.Options{
				AutoEquip: cfg.Inventory.AutoEquip,
				AutoSell:  cfg.Inventory.AutoSell,
				Carry:     carry,
				Resolve: data.ResolveOptions{
					Concurrency: cfg.Catalog.FetchConcurrency,
					Timeout:     cfg.Catalog.FetchTimeout,
				},
			})

			var store *db.InventoryRepository
			if database != nil {
				store = database.Inventories()
			}
			state, err := initialState(gctx, spec, bounded, store)
			if err != nil {
				return err
			}

			c := character.New(spec.ID, state, character.Deps{
				Loot:      proc,
				Validator: validator,
				Sink:      sink,
			}, character.Options{QueueSize: cfg.Inventory.QueueSize, Carry: carry})
			defer c.Close()

			return playCharacter(gctx, c, spec, store)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hits, misses := catalog.Stats()
	slog.Info("scenario complete", "characters", len(sc.Characters), "catalog_hits", hits, "catalog_misses", misses)
	return nil
}

func initialState(ctx context.Context, spec characterSpec, catalog model.Catalog, store *db.InventoryRepository) (*character.State, error) {
	state := &character.State{Wearer: spec.Wearer, Purse: spec.Purse}

	var items []model.Item
	if spec.Load {
		stored, purse, err := store.Load(ctx, spec.ID)
		if err != nil {
			return nil, fmt.Errorf("loading character %d: %w", spec.ID, err)
		}
		items, state.Purse = stored, purse
	} else {
		for _, is := range spec.Items {
			items = append(items, model.NewItem(is.Item, is.Slot, is.Charges))
		}
	}

	state.Inventory = model.NewInventory(spec.ID, catalog, items...)
	return state, nil
}

func playCharacter(ctx context.Context, c *character.Character, spec characterSpec, store *db.InventoryRepository) error {
	for i, st := range spec.Steps {
		if err := playStep(ctx, c, st); err != nil {
			return fmt.Errorf("character %d step %d: %w", spec.ID, i+1, err)
		}
	}

	items, purse, err := c.Snapshot(ctx)
	if err != nil {
		return err
	}
	weight, err := c.Weight(ctx)
	if err != nil {
		return err
	}
	ac, err := c.ArmorClass(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("character %d: %d items, weight %d, ac %d\n", spec.ID, len(items), weight, ac)
	printInventory(items, purse)

	if spec.Save {
		if err := store.Save(ctx, spec.ID, items, purse); err != nil {
			return fmt.Errorf("saving character %d: %w", spec.ID, err)
		}
		slog.Info("character saved", "character", spec.ID, "items", len(items))
	}
	return nil
}

func playStep(ctx context.Context, c *character.Character, st step) error {
	switch {
	case st.Loot != nil:
		out, err := c.Grant(ctx, st.Loot)
		if err != nil {
			return err
		}
		slog.Info("loot applied",
			"character", c.ID(),
			"equipped", len(out.Equipped),
			"placed", len(out.Placed),
			"sold", len(out.Sold),
			"dropped", len(out.Dropped),
			"skipped", len(out.Skipped),
			"credited", out.Credited.String())
	case st.Click != nil:
		res, err := c.Click(ctx, *st.Click)
		if err != nil {
			return err
		}
		slog.Debug("click", "character", c.ID(), "slot", *st.Click, "result", res)
	case st.Sell != nil:
		res, err := c.Sell(ctx, st.Sell.DeleteNoDrop)
		if err != nil {
			return err
		}
		slog.Debug("sold", "character", c.ID(), "delta", res.Delta.String(), "carried", res.Purse.String())
	case st.Currency != nil:
		loc, err := parseLocation(st.Currency.Location)
		if err != nil {
			return err
		}
		return c.ApplyCurrency(ctx, loot.CurrencyDelta{Location: loc, Amount: st.Currency.Amount})
	case st.Place != nil:
		res, err := c.Place(ctx, st.Place.ItemID, st.Place.Quantity)
		if errors.Is(err, model.ErrInventoryFull) {
			slog.Warn("inventory full", "character", c.ID(), "item", st.Place.ItemID, "leftover", res.Leftover)
			return nil
		}
		if err != nil {
			return err
		}
		slog.Debug("placed", "character", c.ID(), "item", st.Place.ItemID, "units", res.Placed)
	case st.Remove != nil:
		removed, err := c.Remove(ctx, *st.Remove)
		if err != nil {
			return err
		}
		slog.Debug("removed", "character", c.ID(), "slot", *st.Remove, "items", len(removed))
	default:
		return fmt.Errorf("empty step")
	}
	return nil
}
