package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/platform/obs"
)

// Postgres-backed implementation of the ShopCatalog port.
type PgShopCatalog struct{ DB *sql.DB }

func NewPgShopCatalog(db *sql.DB) *PgShopCatalog {
	return &PgShopCatalog{DB: db}
}

// Return all shops with their inventory sets.
func (c *PgShopCatalog) ListShops(ctx context.Context) (_ []*domain.Shop, err error) {
	defer obs.Time(ctx, "catalog.ListShops")(&err)

	if c.DB == nil {
		return nil, errors.New("shop catalog: DB is nil")
	}

	shopQuery := `
	SELECT shop_id, name, lat, lng
	FROM shops
	ORDER BY shop_id;
	`
	rows, err := c.DB.QueryContext(ctx, shopQuery)
	if err != nil {
		return nil, fmt.Errorf("list shops: query shops table: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Shop)
	shops := make([]*domain.Shop, 0, 16)
	for rows.Next() {
		var id, name string
		var lat, lng float64
		if err := rows.Scan(&id, &name, &lat, &lng); err != nil {
			return nil, fmt.Errorf("list shops: scan shop row: %w", err)
		}
		shop := &domain.Shop{
			ID:        id,
			Name:      name,
			Location:  domain.GeoPoint{Lat: lat, Lng: lng},
			Inventory: make(map[string]struct{}),
		}
		byID[id] = shop
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shops: shop row iteration: %w", err)
	}

	invQuery := `
	SELECT shop_id, ingredient
	FROM shop_inventory;
	`
	invRows, err := c.DB.QueryContext(ctx, invQuery)
	if err != nil {
		return nil, fmt.Errorf("list shops: query shop_inventory table: %w", err)
	}
	defer invRows.Close()

	for invRows.Next() {
		var id, ingredient string
		if err := invRows.Scan(&id, &ingredient); err != nil {
			return nil, fmt.Errorf("list shops: scan inventory row: %w", err)
		}
		shop, ok := byID[id]
		if !ok {
			continue
		}
		// Rows are stored normalized by the seeder, but normalize again
		// so hand-inserted rows still match.
		shop.Inventory[domain.NormalizeIngredient(ingredient)] = struct{}{}
	}
	if err := invRows.Err(); err != nil {
		return nil, fmt.Errorf("list shops: inventory row iteration: %w", err)
	}

	return shops, nil
}
