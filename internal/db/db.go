// Package db — PostgreSQL-хранилище каталога предметов и инвентарей персонажей.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/invengine/internal/config"
)

// DB wraps the pgx pool shared by the catalog and inventory repositories.
type DB struct {
	pool *pgxpool.Pool
}

// New opens a pool for cfg and pings it. cfg.MaxConns <= 0 keeps the pgx default.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}
	slog.Debug("database pool ready", "host", cfg.Host, "db", cfg.DBName, "max_conns", poolCfg.MaxConns)
	return &DB{pool: pool}, nil
}

func (d *DB) Close() {
	d.pool.Close()
}

// Items — каталог шаблонов; реализует model.Catalog.
func (d *DB) Items() *ItemRepository {
	return NewItemRepository(d.pool)
}

// Inventories — сохранённые предметы и кошельки персонажей.
func (d *DB) Inventories() *InventoryRepository {
	return NewInventoryRepository(d.pool)
}
