package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/invengine/internal/model"
)

// ItemRepository — каталог шаблонов предметов в PostgreSQL.
// Implements model.Catalog.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository создаёт новый ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemTemplateColumns = `
	id, name, class, item_type, weight, price, stack_size, nodrop, norent, bag_slots,
	slots, classes, races, ac, hp, mana, str, sta, agi, dex, intel, wis, cha,
	damage, delay, req_level, proc_effect, click_effect`

// ItemByID загружает шаблон предмета по ID.
// Returns an error wrapping model.ErrItemNotFound if there is no such row.
func (r *ItemRepository) ItemByID(ctx context.Context, itemID int32) (*model.ItemTemplate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemTemplateColumns+` FROM item_templates WHERE id = $1`, itemID)

	tpl, err := scanItemTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", itemID, model.ErrItemNotFound)
		}
		return nil, fmt.Errorf("querying item template %d: %w", itemID, err)
	}
	return tpl, nil
}

// LoadAll загружает все шаблоны, упорядоченные по ID.
func (r *ItemRepository) LoadAll(ctx context.Context) ([]model.ItemTemplate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemTemplateColumns+` FROM item_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying item templates: %w", err)
	}
	defer rows.Close()

	var out []model.ItemTemplate
	for rows.Next() {
		tpl, err := scanItemTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item template row: %w", err)
		}
		out = append(out, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item template rows: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces templates in one batch (catalog import).
func (r *ItemRepository) Upsert(ctx context.Context, tpls ...model.ItemTemplate) error {
	if len(tpls) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range tpls {
		t := &tpls[i]
		batch.Queue(`
			INSERT INTO item_templates (`+itemTemplateColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28)
			ON CONFLICT (id) DO UPDATE SET
			 name=$2, class=$3, item_type=$4, weight=$5, price=$6, stack_size=$7, nodrop=$8, norent=$9,
			 bag_slots=$10, slots=$11, classes=$12, races=$13, ac=$14, hp=$15, mana=$16, str=$17,
			 sta=$18, agi=$19, dex=$20, intel=$21, wis=$22, cha=$23, damage=$24, delay=$25,
			 req_level=$26, proc_effect=$27, click_effect=$28`,
			t.ID, t.Name, int32(t.Class), int32(t.Type), t.Weight, t.Price, t.StackSize, t.NoDrop, t.NoRent,
			t.BagSlots, int64(t.Slots), int64(t.Classes), int64(t.Races), t.AC, t.HP, t.Mana, t.Str,
			t.Sta, t.Agi, t.Dex, t.Int, t.Wis, t.Cha, t.Damage, t.Delay,
			t.ReqLevel, t.ProcEffect, t.ClickEffect,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	for range tpls {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("upserting item templates: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing item template batch: %w", err)
	}

	slog.Info("item templates imported", "count", len(tpls))
	return nil
}

// Count returns the number of templates in the catalog.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM item_templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting item templates: %w", err)
	}
	return n, nil
}

func scanItemTemplate(row pgx.Row) (*model.ItemTemplate, error) {
	var (
		t                     model.ItemTemplate
		class, itemType       int32
		slots, classes, races int64
	)
	err := row.Scan(
		&t.ID, &t.Name, &class, &itemType, &t.Weight, &t.Price, &t.StackSize, &t.NoDrop, &t.NoRent, &t.BagSlots,
		&slots, &classes, &races, &t.AC, &t.HP, &t.Mana, &t.Str, &t.Sta, &t.Agi, &t.Dex, &t.Int, &t.Wis, &t.Cha,
		&t.Damage, &t.Delay, &t.ReqLevel, &t.ProcEffect, &t.ClickEffect,
	)
	if err != nil {
		return nil, err
	}
	t.Class = model.ItemClass(class)
	t.Type = model.ItemType(itemType)
	t.Slots = uint32(slots)
	t.Classes = uint32(classes)
	t.Races = uint32(races)
	return &t, nil
}
