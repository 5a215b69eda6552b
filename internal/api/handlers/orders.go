package handlers

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"

	"dish-delivery-service/internal/api/dto"
	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/services"
)

// OrderHandler exposes the create-delivery-order operation.
type OrderHandler struct {
	Service *services.DeliveryOrderService
	// DefaultUserLocation is used when the request omits user_location.
	DefaultUserLocation domain.GeoPoint
}

// Create decodes a delivery-order request, runs the order service, and
// maps typed failures to distinct HTTP statuses so clients can show
// actionable messages.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CreateOrderRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	servings := req.Servings
	if servings == 0 {
		servings = 2
	}
	if servings < 1 || servings > 10 {
		writeError(w, r, http.StatusBadRequest, "servings must be between 1 and 10")
		return
	}

	origin := h.DefaultUserLocation
	if req.UserLocation != nil {
		origin = domain.GeoPoint{Lat: req.UserLocation.Lat, Lng: req.UserLocation.Lng}
	}

	ingredients := make([]domain.IngredientRequirement, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, domain.IngredientRequirement{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	result, err := h.Service.CreateOrder(r.Context(), services.CreateOrderRequest{
		Dish:        req.Dish,
		Servings:    servings,
		Ingredients: ingredients,
		Origin:      origin,
	})
	if err != nil {
		if f, ok := services.AsFailure(err); ok {
			switch f.Kind {
			case services.FailureInvalidRequest:
				writeError(w, r, http.StatusBadRequest, f.Reason)
			case services.FailureNoShopsAvailable:
				writeError(w, r, http.StatusNotFound, "no shops found for this order, please try a different dish")
			case services.FailureNoAgentAvailable:
				writeError(w, r, http.StatusServiceUnavailable, "no delivery agents available at the moment")
			case services.FailureTimeout:
				writeError(w, r, http.StatusGatewayTimeout, "order could not be completed in time, please retry")
			default:
				writeError(w, r, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		log.Printf("create order failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	order := result.Order
	res := dto.CreateOrderResponse{
		OrderID:  order.OrderID,
		Dish:     order.Dish,
		Servings: order.Servings,
		TopShop: dto.ShopMatchResponse{
			ShopID:               order.Shop.ID,
			Name:                 order.Shop.Name,
			MatchPercent:         round1(order.CoveragePercent),
			DistanceKm:           round1(order.ShopDistanceKm),
			AvailableIngredients: toIngredientDTOs(order.Available),
			MissingIngredients:   toIngredientDTOs(order.Missing),
		},
		DeliveryAgent: dto.AgentResponse{
			AgentID:          order.Agent.ID,
			Name:             order.Agent.Name,
			DistanceToShopKm: round1(order.AgentDistanceKm),
		},
		EstimatedMinutes: dto.EstimateResponse{
			Min: order.Estimate.MinMinutes,
			Max: order.Estimate.MaxMinutes,
		},
		AllRankedShops: make([]dto.ShopMatchResponse, 0, len(result.Ranked)),
		CreatedAt:      order.CreatedAt,
	}

	for _, m := range result.Ranked {
		res.AllRankedShops = append(res.AllRankedShops, dto.ShopMatchResponse{
			ShopID:               m.Shop.ID,
			Name:                 m.Shop.Name,
			MatchPercent:         round1(m.CoveragePercent),
			DistanceKm:           round1(m.DistanceKm),
			AvailableIngredients: toIngredientDTOs(m.Available),
			MissingIngredients:   toIngredientDTOs(m.Missing),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toIngredientDTOs(in []domain.IngredientRequirement) []dto.Ingredient {
	out := make([]dto.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, dto.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return out
}

// Display rounding to 0.1; the domain keeps full precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
