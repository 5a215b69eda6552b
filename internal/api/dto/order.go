package dto

import "time"

type Ingredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CreateOrderRequest struct {
	Dish         string       `json:"dish"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	UserLocation *GeoPoint    `json:"user_location"`
}

type ShopMatchResponse struct {
	ShopID               string       `json:"shop_id"`
	Name                 string       `json:"name"`
	MatchPercent         float64      `json:"match_percent"`
	DistanceKm           float64      `json:"distance_km"`
	AvailableIngredients []Ingredient `json:"available_ingredients"`
	MissingIngredients   []Ingredient `json:"missing_ingredients"`
}

type AgentResponse struct {
	AgentID          string  `json:"agent_id"`
	Name             string  `json:"name"`
	DistanceToShopKm float64 `json:"distance_to_shop_km"`
}

type EstimateResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type CreateOrderResponse struct {
	OrderID          string              `json:"order_id"`
	Dish             string              `json:"dish"`
	Servings         int                 `json:"servings"`
	TopShop          ShopMatchResponse   `json:"top_shop"`
	DeliveryAgent    AgentResponse       `json:"delivery_agent"`
	EstimatedMinutes EstimateResponse    `json:"estimated_minutes"`
	AllRankedShops   []ShopMatchResponse `json:"all_ranked_shops"`
	CreatedAt        time.Time           `json:"created_at"`
}
