package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/platform/obs"
)

// Postgres-backed implementation of the OrderRepository port.
type PgOrderRepository struct{ DB *sql.DB }

func NewPgOrderRepository(db *sql.DB) *PgOrderRepository {
	return &PgOrderRepository{DB: db}
}

// Store one committed order. Order ids are unique per creation, so a
// conflicting insert is a replay and is ignored.
func (r *PgOrderRepository) SaveOrder(ctx context.Context, order *domain.DeliveryOrder) (err error) {
	defer obs.Time(ctx, "orders.Save")(&err)

	if r.DB == nil {
		return errors.New("order repository: DB is nil")
	}
	if order == nil {
		return errors.New("save order: order is nil")
	}

	query := `
	INSERT INTO orders (
		order_id,
		dish,
		servings,
		shop_id,
		agent_id,
		coverage_percent,
		shop_distance_km,
		agent_distance_km,
		estimate_min_minutes,
		estimate_max_minutes,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (order_id) DO NOTHING;
	`

	_, err = r.DB.ExecContext(ctx, query,
		order.OrderID,
		order.Dish,
		order.Servings,
		order.Shop.ID,
		order.Agent.ID,
		order.CoveragePercent,
		order.ShopDistanceKm,
		order.AgentDistanceKm,
		order.Estimate.MinMinutes,
		order.Estimate.MaxMinutes,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save order %q: %w", order.OrderID, err)
	}

	return nil
}
