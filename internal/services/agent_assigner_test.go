package services

import (
	"testing"

	"dish-delivery-service/internal/domain"
)

func testAgent(id, name string, lat, lng float64, status domain.AgentStatus) *domain.DeliveryAgent {
	return &domain.DeliveryAgent{
		ID:       id,
		Name:     name,
		Location: domain.GeoPoint{Lat: lat, Lng: lng},
		Status:   status,
	}
}

func TestAssignNearestAgentPicksClosestAvailable(t *testing.T) {
	origin := domain.GeoPoint{Lat: 37.7749, Lng: -122.4194}

	agents := []*domain.DeliveryAgent{
		testAgent("agent_001", "A", 37.9000, -122.4194, domain.AgentAvailable),
		testAgent("agent_002", "B", 37.7760, -122.4194, domain.AgentAvailable),
		// Closest of all, but busy.
		testAgent("agent_003", "C", 37.7749, -122.4194, domain.AgentBusy),
	}

	agent, dist, err := AssignNearestAgent(agents, origin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agent.ID != "agent_002" {
		t.Fatalf("assigned %q, want agent_002", agent.ID)
	}
	if dist <= 0 {
		t.Fatalf("distance = %v, want > 0", dist)
	}
}

func TestAssignNearestAgentIDTieBreak(t *testing.T) {
	origin := domain.GeoPoint{Lat: 37.7749, Lng: -122.4194}

	agents := []*domain.DeliveryAgent{
		testAgent("agent_002", "B", 37.7760, -122.4194, domain.AgentAvailable),
		testAgent("agent_001", "A", 37.7760, -122.4194, domain.AgentAvailable),
	}

	agent, _, err := AssignNearestAgent(agents, origin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agent.ID != "agent_001" {
		t.Fatalf("assigned %q, want agent_001", agent.ID)
	}
}

func TestAssignNearestAgentNoneAvailable(t *testing.T) {
	origin := domain.GeoPoint{Lat: 37.7749, Lng: -122.4194}

	agents := []*domain.DeliveryAgent{
		testAgent("agent_001", "A", 37.7760, -122.4194, domain.AgentBusy),
	}

	_, _, err := AssignNearestAgent(agents, origin)
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailureNoAgentAvailable {
		t.Fatalf("err = %v, want NoAgentAvailable failure", err)
	}
}
