package domain

// A candidate ingredient source with a fixed location and a normalized
// inventory set. Treated as an immutable snapshot during one matching
// operation.
type Shop struct {
	ID        string
	Name      string
	Location  GeoPoint
	Inventory map[string]struct{}
}

// MatchResult is the per-shop outcome of scoring one request: how much
// of the required list the shop covers and how far it is from the
// requesting user. Derived data, recomputed per request; only the
// winning result feeds into an order.
type MatchResult struct {
	Shop            *Shop
	CoveragePercent float64
	Available       []IngredientRequirement
	Missing         []IngredientRequirement
	DistanceKm      float64
}
