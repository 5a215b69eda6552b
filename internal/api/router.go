package api

import (
	"net/http"

	"dish-delivery-service/internal/api/handlers"
	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/ports"
	"dish-delivery-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	catalog ports.ShopCatalog,
	orderService *services.DeliveryOrderService,
	defaultUserLocation domain.GeoPoint,
) http.Handler {
	mux := http.NewServeMux()

	shopHandler := &handlers.ShopHandler{Catalog: catalog}
	orderHandler := &handlers.OrderHandler{
		Service:             orderService,
		DefaultUserLocation: defaultUserLocation,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/shops", shopHandler.List)
	mux.HandleFunc("/orders", orderHandler.Create)

	return loggingMiddleware(mux)
}
