package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dish-delivery-service/internal/adapters/agentstore"
	"dish-delivery-service/internal/domain"
)

type fakeCatalog struct {
	mu    sync.Mutex
	shops []*domain.Shop
	err   error
	calls int
}

func (f *fakeCatalog) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.shops, nil
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeOrderRepo struct {
	mu    sync.Mutex
	saved []*domain.DeliveryOrder
	err   error
}

func (f *fakeOrderRepo) SaveOrder(ctx context.Context, order *domain.DeliveryOrder) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.saved = append(f.saved, order)
	f.mu.Unlock()
	return nil
}

var testOrigin = domain.GeoPoint{Lat: 37.7749, Lng: -122.4194}

// One shop roughly 2 km north of the origin.
func twoKmShop(items ...string) *domain.Shop {
	return testShop("shop_001", "Fresh Mart", 37.7929, -122.4194, items...)
}

func newTestService(catalog *fakeCatalog, agents *agentstore.MemoryAgentStore) *DeliveryOrderService {
	return NewDeliveryOrderService(catalog, agents, &fakeOrderRepo{})
}

func TestCreateOrderFullCoverage(t *testing.T) {
	catalog := &fakeCatalog{shops: []*domain.Shop{twoKmShop("tomato", "basil", "cheese")}}
	agents := agentstore.NewMemoryAgentStore([]*domain.DeliveryAgent{
		testAgent("agent_001", "Agent A", 37.7929, -122.4194, domain.AgentAvailable),
	})
	svc := newTestService(catalog, agents)

	result, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Dish:     "margherita pizza",
		Servings: 2,
		Ingredients: []domain.IngredientRequirement{
			{Name: "tomato"}, {Name: "basil"},
		},
		Origin: testOrigin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := result.Order
	if order.CoveragePercent != 100 {
		t.Errorf("coverage = %v, want 100", order.CoveragePercent)
	}
	if len(order.Missing) != 0 {
		t.Errorf("missing = %v, want none", order.Missing)
	}
	if order.Estimate.MinMinutes != 21 {
		t.Errorf("estimate min = %d, want 21", order.Estimate.MinMinutes)
	}
	if order.Estimate.MaxMinutes != 29 {
		t.Errorf("estimate max = %d, want 29", order.Estimate.MaxMinutes)
	}
	if order.Agent.ID != "agent_001" {
		t.Errorf("agent = %q, want agent_001", order.Agent.ID)
	}
	if order.OrderID == "" {
		t.Error("order id is empty")
	}

	if status, _ := agents.Status("agent_001"); status != domain.AgentBusy {
		t.Errorf("agent status after commit = %q, want BUSY", status)
	}
}

func TestCreateOrderPartialCoverageWidensEstimate(t *testing.T) {
	catalog := &fakeCatalog{shops: []*domain.Shop{twoKmShop("tomato")}}
	agents := agentstore.NewMemoryAgentStore([]*domain.DeliveryAgent{
		testAgent("agent_001", "Agent A", 37.7929, -122.4194, domain.AgentAvailable),
	})
	svc := newTestService(catalog, agents)

	result, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Dish:     "spiced stew",
		Servings: 2,
		Ingredients: []domain.IngredientRequirement{
			{Name: "tomato"}, {Name: "rare-spice"},
		},
		Origin: testOrigin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := result.Order
	if order.CoveragePercent != 50 {
		t.Errorf("coverage = %v, want 50", order.CoveragePercent)
	}
	if len(order.Missing) != 1 || order.Missing[0].Name != "rare-spice" {
		t.Errorf("missing = %v, want [rare-spice]", order.Missing)
	}
	// 50 missing coverage points * 0.2 widens both bounds by 10 versus
	// the full-coverage window (21/29).
	if order.Estimate.MinMinutes != 31 {
		t.Errorf("estimate min = %d, want 31", order.Estimate.MinMinutes)
	}
	if order.Estimate.MaxMinutes != 39 {
		t.Errorf("estimate max = %d, want 39", order.Estimate.MaxMinutes)
	}
}

func TestCreateOrderNoShops(t *testing.T) {
	catalog := &fakeCatalog{}
	agents := agentstore.NewMemoryAgentStore(nil)
	svc := newTestService(catalog, agents)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Dish:        "pizza",
		Servings:    2,
		Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		Origin:      testOrigin,
	})
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailureNoShopsAvailable {
		t.Fatalf("err = %v, want NoShopsAvailable failure", err)
	}
}

func TestCreateOrderAllAgentsBusy(t *testing.T) {
	catalog := &fakeCatalog{shops: []*domain.Shop{twoKmShop("tomato")}}
	agents := agentstore.NewMemoryAgentStore([]*domain.DeliveryAgent{
		testAgent("agent_001", "Agent A", 37.7929, -122.4194, domain.AgentBusy),
		testAgent("agent_002", "Agent B", 37.7929, -122.4194, domain.AgentBusy),
	})
	svc := newTestService(catalog, agents)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Dish:        "pizza",
		Servings:    2,
		Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		Origin:      testOrigin,
	})
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailureNoAgentAvailable {
		t.Fatalf("err = %v, want NoAgentAvailable failure", err)
	}
}

func TestCreateOrderValidationShortCircuits(t *testing.T) {
	catalog := &fakeCatalog{shops: []*domain.Shop{twoKmShop("tomato")}}
	agents := agentstore.NewMemoryAgentStore(nil)
	svc := newTestService(catalog, agents)

	cases := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"zero servings", CreateOrderRequest{
			Dish: "pizza", Servings: 0,
			Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		}},
		{"blank dish", CreateOrderRequest{
			Dish: "   ", Servings: 2,
			Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		}},
		{"empty ingredients", CreateOrderRequest{
			Dish: "pizza", Servings: 2,
		}},
	}

	for _, tc := range cases {
		_, err := svc.CreateOrder(context.Background(), tc.req)
		f, ok := AsFailure(err)
		if !ok || f.Kind != FailureInvalidRequest {
			t.Fatalf("%s: err = %v, want InvalidRequest failure", tc.name, err)
		}
	}

	// Validation failures must short-circuit before any catalog call.
	if n := catalog.callCount(); n != 0 {
		t.Fatalf("catalog called %d times during invalid requests, want 0", n)
	}
}

func TestCreateOrderCatalogTimeout(t *testing.T) {
	catalog := &fakeCatalog{err: context.DeadlineExceeded}
	agents := agentstore.NewMemoryAgentStore(nil)
	svc := newTestService(catalog, agents)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Dish:        "pizza",
		Servings:    2,
		Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		Origin:      testOrigin,
	})
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailureTimeout {
		t.Fatalf("err = %v, want Timeout failure", err)
	}
}

func TestCreateOrderPersistenceFailureIsNonFatal(t *testing.T) {
	catalog := &fakeCatalog{shops: []*domain.Shop{twoKmShop("tomato")}}
	agents := agentstore.NewMemoryAgentStore([]*domain.DeliveryAgent{
		testAgent("agent_001", "Agent A", 37.7929, -122.4194, domain.AgentAvailable),
	})
	svc := NewDeliveryOrderService(catalog, agents, &fakeOrderRepo{err: errors.New("db down")})

	result, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Dish:        "pizza",
		Servings:    2,
		Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		Origin:      testOrigin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Order == nil {
		t.Fatal("order is nil despite successful match")
	}
	if !result.PersistenceFailed {
		t.Fatal("PersistenceFailed = false, want true")
	}
}

func TestCreateOrderConcurrentAssignmentSingleAgent(t *testing.T) {
	catalog := &fakeCatalog{shops: []*domain.Shop{twoKmShop("tomato")}}
	agents := agentstore.NewMemoryAgentStore([]*domain.DeliveryAgent{
		testAgent("agent_001", "Agent A", 37.7929, -122.4194, domain.AgentAvailable),
	})
	svc := newTestService(catalog, agents)

	req := CreateOrderRequest{
		Dish:        "pizza",
		Servings:    2,
		Ingredients: []domain.IngredientRequirement{{Name: "tomato"}},
		Origin:      testOrigin,
	}

	const callers = 2
	results := make([]*CreateOrderResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.CreateOrder(context.Background(), req)
		}(i)
	}
	wg.Wait()

	committed := 0
	for i := 0; i < callers; i++ {
		if errs[i] == nil {
			if results[i].Order.Agent.ID != "agent_001" {
				t.Fatalf("caller %d committed unexpected agent %q", i, results[i].Order.Agent.ID)
			}
			committed++
			continue
		}
		f, ok := AsFailure(errs[i])
		if !ok || f.Kind != FailureNoAgentAvailable {
			t.Fatalf("caller %d: err = %v, want NoAgentAvailable failure", i, errs[i])
		}
	}

	// Exactly one caller may commit the single agent.
	if committed != 1 {
		t.Fatalf("%d callers committed the agent, want exactly 1", committed)
	}
	if status, _ := agents.Status("agent_001"); status != domain.AgentBusy {
		t.Fatalf("agent status = %q, want BUSY", status)
	}
}
