package agentstore

import (
	"context"
	"errors"
	"testing"

	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *RedisAgentStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisAgentStoreFromClient(client)
}

func TestRedisAgentStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	agents := []*domain.DeliveryAgent{
		{
			ID:       "agent_002",
			Name:     "Agent B",
			Location: domain.GeoPoint{Lat: 37.7849, Lng: -122.4094},
			Status:   domain.AgentBusy,
		},
		{
			ID:       "agent_001",
			Name:     "Agent A",
			Location: domain.GeoPoint{Lat: 37.7749, Lng: -122.4194},
			Status:   domain.AgentAvailable,
		},
	}
	for _, a := range agents {
		if err := store.PutAgent(ctx, a); err != nil {
			t.Fatalf("put agent: %v", err)
		}
	}

	listed, err := store.ListAgents(ctx)
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d agents, want 2", len(listed))
	}

	// Sorted by id regardless of SCAN order.
	if listed[0].ID != "agent_001" || listed[1].ID != "agent_002" {
		t.Fatalf("order = [%s, %s], want [agent_001, agent_002]", listed[0].ID, listed[1].ID)
	}
	if listed[0].Status != domain.AgentAvailable {
		t.Errorf("agent_001 status = %q, want AVAILABLE", listed[0].Status)
	}
	if listed[0].Location.Lat != 37.7749 || listed[0].Location.Lng != -122.4194 {
		t.Errorf("agent_001 location = %+v", listed[0].Location)
	}
}

func TestRedisAgentStoreCompareAndSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	agent := &domain.DeliveryAgent{
		ID:       "agent_001",
		Name:     "Agent A",
		Location: domain.GeoPoint{Lat: 37.7749, Lng: -122.4194},
		Status:   domain.AgentAvailable,
	}
	if err := store.PutAgent(ctx, agent); err != nil {
		t.Fatalf("put agent: %v", err)
	}

	// First claim wins.
	if err := store.CompareAndSetStatus(ctx, "agent_001", domain.AgentAvailable, domain.AgentBusy); err != nil {
		t.Fatalf("first cas: %v", err)
	}

	// Second claim sees the flipped status and loses.
	err := store.CompareAndSetStatus(ctx, "agent_001", domain.AgentAvailable, domain.AgentBusy)
	if !errors.Is(err, ports.ErrStatusConflict) {
		t.Fatalf("second cas err = %v, want ErrStatusConflict", err)
	}

	listed, err := store.ListAgents(ctx)
	if err != nil {
		t.Fatalf("list agents: %v", err)
	}
	if listed[0].Status != domain.AgentBusy {
		t.Fatalf("status = %q, want BUSY", listed[0].Status)
	}
}

func TestRedisAgentStoreCompareAndSetMissingAgent(t *testing.T) {
	store := newTestStore(t)

	// A missing hash has no status field, so the expected value never
	// matches and the claim must conflict rather than create the key.
	err := store.CompareAndSetStatus(context.Background(), "agent_404", domain.AgentAvailable, domain.AgentBusy)
	if !errors.Is(err, ports.ErrStatusConflict) {
		t.Fatalf("err = %v, want ErrStatusConflict", err)
	}
}
