package services

import (
	"math"

	"dish-delivery-service/internal/domain"
)

// EstimateConfig holds the delivery-time constants. All values are
// configuration, not hard-coded; DefaultEstimateConfig documents the
// defaults.
type EstimateConfig struct {
	// Fixed preparation overhead in minutes.
	PrepBaseMinutes float64
	// Travel time per kilometer of shop distance.
	MinutesPerKm float64
	// Minutes added to both bounds per missing coverage point, to
	// account for substitution and sourcing delay.
	PartialPenaltyFactor float64
	// Minimum spread between the window bounds, in minutes.
	MinWindowSpread int
}

func DefaultEstimateConfig() EstimateConfig {
	return EstimateConfig{
		PrepBaseMinutes:      15,
		MinutesPerKm:         3,
		PartialPenaltyFactor: 0.2,
		MinWindowSpread:      5,
	}
}

// EstimateDelivery derives a delivery window in whole minutes from
// ingredient coverage and shop distance. Incomplete coverage widens
// both bounds. The returned window always satisfies min <= max.
func EstimateDelivery(cfg EstimateConfig, coveragePercent, distanceKm float64) domain.EstimateWindow {
	base := cfg.PrepBaseMinutes + distanceKm*cfg.MinutesPerKm

	penalty := 0.0
	if coveragePercent < 100 {
		penalty = (100 - coveragePercent) * cfg.PartialPenaltyFactor
	}

	minMinutes := int(math.Round(base + penalty))
	maxMinutes := int(math.Round(base*1.4 + penalty))
	if maxMinutes < minMinutes+cfg.MinWindowSpread {
		maxMinutes = minMinutes + cfg.MinWindowSpread
	}

	return domain.EstimateWindow{MinMinutes: minMinutes, MaxMinutes: maxMinutes}
}
