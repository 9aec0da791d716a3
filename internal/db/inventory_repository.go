package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/invengine/internal/model"
)

// InventoryRepository хранит предметы и кошелёк персонажа.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository создаёт новый InventoryRepository.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// LoadItems загружает все предметы персонажа, упорядоченные по слоту.
func (r *InventoryRepository) LoadItems(ctx context.Context, charID int64) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT slot_id, item_id, charges, augments, custom_data
		FROM character_items
		WHERE char_id = $1
		ORDER BY slot_id`, charID)
	if err != nil {
		return nil, fmt.Errorf("querying items for character %d: %w", charID, err)
	}
	defer rows.Close()

	items := make([]model.Item, 0, 32)
	for rows.Next() {
		var (
			it       model.Item
			slot     int32
			augments []int32
			custom   map[string]string
		)
		if err := rows.Scan(&slot, &it.ItemID, &it.Charges, &augments, &custom); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		it.Slot = model.SlotID(slot)
		copy(it.Augments[:], augments)
		if len(custom) > 0 {
			it.CustomData = custom
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return items, nil
}

// LoadPurse загружает кошелёк персонажа. Missing locations stay zero.
func (r *InventoryRepository) LoadPurse(ctx context.Context, charID int64) (model.Purse, error) {
	var purse model.Purse

	rows, err := r.pool.Query(ctx, `
		SELECT location, platinum, gold, silver, copper
		FROM character_currency
		WHERE char_id = $1`, charID)
	if err != nil {
		return purse, fmt.Errorf("querying currency for character %d: %w", charID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			loc int32
			l   model.Ledger
		)
		if err := rows.Scan(&loc, &l.Platinum, &l.Gold, &l.Silver, &l.Copper); err != nil {
			return purse, fmt.Errorf("scanning currency row: %w", err)
		}
		dst := purse.At(model.PurseLocation(loc))
		if dst == nil {
			slog.Warn("unknown purse location ignored", "characterID", charID, "location", loc)
			continue
		}
		*dst = l
	}
	if err := rows.Err(); err != nil {
		return purse, fmt.Errorf("iterating currency rows: %w", err)
	}
	return purse, nil
}

// Load returns items and purse of a character.
func (r *InventoryRepository) Load(ctx context.Context, charID int64) ([]model.Item, model.Purse, error) {
	items, err := r.LoadItems(ctx, charID)
	if err != nil {
		return nil, model.Purse{}, err
	}
	purse, err := r.LoadPurse(ctx, charID)
	if err != nil {
		return nil, model.Purse{}, err
	}
	return items, purse, nil
}

// Save сохраняет предметы и кошелёк в одной транзакции (full replace).
func (r *InventoryRepository) Save(ctx context.Context, charID int64, items []model.Item, purse model.Purse) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for character %d: %w", charID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("rollback failed", "characterID", charID, "error", err)
		}
	}()

	if err := r.saveItemsTx(ctx, tx, charID, items); err != nil {
		return err
	}
	if err := r.savePurseTx(ctx, tx, charID, purse); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for character %d: %w", charID, err)
	}

	slog.Info("inventory saved",
		"characterID", charID,
		"items", len(items),
		"carried", purse.Carried.String())
	return nil
}

func (r *InventoryRepository) saveItemsTx(ctx context.Context, tx pgx.Tx, charID int64, items []model.Item) error {
	if _, err := tx.Exec(ctx, `DELETE FROM character_items WHERE char_id = $1`, charID); err != nil {
		return fmt.Errorf("deleting old items for character %d: %w", charID, err)
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, it := range items {
		var custom any
		if len(it.CustomData) > 0 {
			custom = it.CustomData
		}
		rows = append(rows, []any{charID, int32(it.Slot), it.ItemID, it.Charges, it.Augments[:], custom})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"character_items"},
		[]string{"char_id", "slot_id", "item_id", "charges", "augments", "custom_data"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting items for character %d: %w", charID, err)
	}
	return nil
}

func (r *InventoryRepository) savePurseTx(ctx context.Context, tx pgx.Tx, charID int64, purse model.Purse) error {
	batch := &pgx.Batch{}
	locs := []model.PurseLocation{model.PurseCarried, model.PurseBank, model.PurseCursor}
	for _, loc := range locs {
		l := purse.At(loc)
		batch.Queue(`
			INSERT INTO character_currency (char_id, location, platinum, gold, silver, copper)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (char_id, location) DO UPDATE SET
			 platinum=$3, gold=$4, silver=$5, copper=$6`,
			charID, int32(loc), l.Platinum, l.Gold, l.Silver, l.Copper,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range locs {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving currency for character %d: %w", charID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing currency batch: %w", err)
	}
	return nil
}
