package ports

import (
	"context"

	"dish-delivery-service/internal/domain"
)

// Port: a boundary for retrieving the shop catalog from a data source.
type ShopCatalog interface {
	// Retrieve all shops eligible for matching.
	ListShops(ctx context.Context) ([]*domain.Shop, error)
}
