// Inventory engine driver: loads the item catalog and replays character scenarios.
//
// Usage:
//
//	go run ./cmd/invctl run config/scenario.yaml   # replay a scenario
//	go run ./cmd/invctl seed                       # copy the YAML catalog into PostgreSQL
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/invengine/internal/config"
	"github.com/udisondev/invengine/internal/data"
	"github.com/udisondev/invengine/internal/db"
	"github.com/udisondev/invengine/internal/model"
)

const ConfigPath = "config/invengine.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfgPath := ConfigPath
	if p := os.Getenv("INVENGINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "run":
		if len(args) < 2 {
			return fmt.Errorf("run: scenario path required")
		}
		return runScenario(ctx, cfg, args[1])
	case "seed":
		return seedCatalog(ctx, cfg)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Println("Usage: invctl <command> [args]")
	fmt.Println()
	fmt.Println("  run <scenario.yaml>   replay a character scenario")
	fmt.Println("  seed                  upsert catalog.path into the item_templates table")
}

// openCatalog builds the configured catalog wrapped in a read-through cache.
// The returned DB is nil unless catalog.source is postgres.
func openCatalog(ctx context.Context, cfg config.Engine) (*data.CatalogCache, *db.DB, error) {
	switch cfg.Catalog.Source {
	case config.CatalogPostgres:
		database, err := connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		n, err := database.Items().Count(ctx)
		if err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("counting item templates: %w", err)
		}
		slog.Info("using postgres item catalog", "templates", n)
		return data.NewCatalogCache(database.Items()), database, nil
	default:
		cat, err := data.LoadItemCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, err
		}
		return data.NewCatalogCache(cat), nil, nil
	}
}

func connect(ctx context.Context, cfg config.Engine) (*db.DB, error) {
	database, err := db.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	version, err := db.RunMigrations(ctx, cfg.Database.DSN())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied", "version", version)
	return database, nil
}

func seedCatalog(ctx context.Context, cfg config.Engine) error {
	cat, err := data.LoadItemCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Items().Upsert(ctx, cat.Templates()...); err != nil {
		return fmt.Errorf("seeding item templates: %w", err)
	}
	slog.Info("item catalog seeded", "templates", cat.Len())
	return nil
}

func printInventory(items []model.Item, purse model.Purse) {
	for _, it := range items {
		fmt.Printf("  %-14s item=%d charges=%d\n", it.Slot, it.ItemID, it.Charges)
	}
	fmt.Printf("  carried: %s  bank: %s  cursor: %s\n", purse.Carried, purse.Bank, purse.Cursor)
}
