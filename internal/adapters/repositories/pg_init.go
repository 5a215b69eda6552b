package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the catalog and order schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShopsQuery := `
	CREATE TABLE IF NOT EXISTS shops (
		shop_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createInventoryQuery := `
	CREATE TABLE IF NOT EXISTS shop_inventory (
		shop_id TEXT NOT NULL REFERENCES shops(shop_id) ON DELETE CASCADE,
		ingredient TEXT NOT NULL,
		PRIMARY KEY (shop_id, ingredient)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		dish TEXT NOT NULL,
		servings INTEGER NOT NULL,
		shop_id TEXT NOT NULL,
		agent_id TEXT NOT NULL,
		coverage_percent DOUBLE PRECISION NOT NULL,
		shop_distance_km DOUBLE PRECISION NOT NULL,
		agent_distance_km DOUBLE PRECISION NOT NULL,
		estimate_min_minutes INTEGER NOT NULL,
		estimate_max_minutes INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shop_inventory_ingredient
	ON shop_inventory(ingredient);
	`

	statements := []string{
		createShopsQuery,
		createInventoryQuery,
		createOrdersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
