package handlers

import (
	"log"
	"net/http"
	"slices"

	"dish-delivery-service/internal/api/dto"
	"dish-delivery-service/internal/ports"
)

// ShopHandler exposes read-only catalog endpoints.
type ShopHandler struct {
	Catalog ports.ShopCatalog
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	shops, err := h.Catalog.ListShops(r.Context())
	if err != nil {
		log.Printf("list shops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListShopsResponse{
		Shops: make([]dto.ShopResponse, 0, len(shops)),
	}
	for _, s := range shops {
		inventory := make([]string, 0, len(s.Inventory))
		for item := range s.Inventory {
			inventory = append(inventory, item)
		}
		slices.Sort(inventory)

		res.Shops = append(res.Shops, dto.ShopResponse{
			ShopID:    s.ID,
			Name:      s.Name,
			Location:  dto.GeoPoint{Lat: s.Location.Lat, Lng: s.Location.Lng},
			Inventory: inventory,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
