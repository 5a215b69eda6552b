package services

import (
	"math"

	"dish-delivery-service/internal/domain"
)

// AssignNearestAgent returns the AVAILABLE agent closest to origin and
// its distance in kilometers. Ties on distance break by agent id so
// selection is deterministic.
//
// This is read-then-select only: the caller owns the status transition
// and must perform it with a compare-and-set against the agent store.
func AssignNearestAgent(
	agents []*domain.DeliveryAgent,
	origin domain.GeoPoint,
) (*domain.DeliveryAgent, float64, error) {
	var nearest *domain.DeliveryAgent
	minDistance := math.MaxFloat64

	for _, agent := range agents {
		if agent.Status != domain.AgentAvailable {
			continue
		}

		d := domain.DistanceKm(origin, agent.Location)
		if d < minDistance || (d == minDistance && (nearest == nil || agent.ID < nearest.ID)) {
			minDistance = d
			nearest = agent
		}
	}

	if nearest == nil {
		return nil, 0, newFailure(FailureNoAgentAvailable, "no delivery agents available")
	}

	return nearest, minDistance, nil
}
