package ports

import (
	"context"

	"dish-delivery-service/internal/domain"
)

// Port: persistence of committed orders. Saving is best-effort from the
// core's point of view; durability is the collaborator's responsibility.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order *domain.DeliveryOrder) error
}
