package domain

import "time"

// Estimated delivery window in whole minutes. MinMinutes is always less
// than or equal to MaxMinutes.
type EstimateWindow struct {
	MinMinutes int
	MaxMinutes int
}

// A committed delivery order. Created exactly once per successful
// create-order pass and immutable afterwards; ownership passes to the
// order repository. The assigned agent had status AVAILABLE at selection
// time.
type DeliveryOrder struct {
	OrderID         string
	Dish            string
	Servings        int
	Shop            *Shop
	Agent           *DeliveryAgent
	CoveragePercent float64
	Available       []IngredientRequirement
	Missing         []IngredientRequirement
	ShopDistanceKm  float64
	AgentDistanceKm float64
	Estimate        EstimateWindow
	CreatedAt       time.Time
}
