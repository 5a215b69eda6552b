package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ShopSeed struct {
	ShopID    string   `json:"shop_id"`
	Name      string   `json:"name"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Inventory []string `json:"inventory"`
}

type AgentSeed struct {
	AgentID string  `json:"agent_id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Status  string  `json:"status"`
}

// CatalogSeed is the on-disk shape of the demo catalog. Shops go to
// postgres; agents go to the agent store.
type CatalogSeed struct {
	Shops  []ShopSeed  `json:"shops"`
	Agents []AgentSeed `json:"agents"`
}

// Load and validate a catalog seed file.
func LoadSeed(jsonPath string) (*CatalogSeed, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("seed catalog: parse json: %w", err)
	}

	for i, s := range seed.Shops {
		if strings.TrimSpace(s.ShopID) == "" {
			return nil, fmt.Errorf("seed catalog: shop at index %d: shop_id cannot be empty", i+1)
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("seed catalog: shop %q: name cannot be empty", s.ShopID)
		}
	}
	for i, a := range seed.Agents {
		if strings.TrimSpace(a.AgentID) == "" {
			return nil, fmt.Errorf("seed catalog: agent at index %d: agent_id cannot be empty", i+1)
		}
	}

	return &seed, nil
}

// Populate the shop tables from seed data.
func SeedShops(ctx context.Context, db *sql.DB, shops []ShopSeed) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed shops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	shopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO shops (shop_id, name, lat, lng)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (shop_id) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	if err != nil {
		return fmt.Errorf("seed shops: prepare shop insert: %w", err)
	}
	defer shopStmt.Close()

	invStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO shop_inventory (shop_id, ingredient)
	VALUES ($1, $2)
	ON CONFLICT (shop_id, ingredient) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("seed shops: prepare inventory insert: %w", err)
	}
	defer invStmt.Close()

	for _, s := range shops {
		if _, err := shopStmt.ExecContext(ctx, s.ShopID, s.Name, s.Lat, s.Lng); err != nil {
			return fmt.Errorf("seed shops: insert shop_id=%q: %w", s.ShopID, err)
		}

		for _, item := range s.Inventory {
			item = strings.ToLower(strings.TrimSpace(item))
			if item == "" {
				continue
			}
			if _, err := invStmt.ExecContext(ctx, s.ShopID, item); err != nil {
				return fmt.Errorf("seed shops: insert inventory shop_id=%q item=%q: %w", s.ShopID, item, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed shops: commit tx: %w", err)
	}

	return nil
}
