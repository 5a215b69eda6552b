package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/platform/obs"
	"dish-delivery-service/internal/ports"

	"github.com/google/uuid"
)

const (
	defaultStoreTimeout  = 5 * time.Second
	defaultAssignRetries = 3
)

// CreateOrderRequest carries one delivery-order attempt through the
// state machine.
type CreateOrderRequest struct {
	Dish        string
	Servings    int
	Ingredients []domain.IngredientRequirement
	Origin      domain.GeoPoint
}

// CreateOrderResult pairs the committed order with the full shop
// ranking, so hosts can surface alternatives to the user.
type CreateOrderResult struct {
	Order  *domain.DeliveryOrder
	Ranked []*domain.MatchResult
	// PersistenceFailed reports a best-effort save that did not stick.
	// The order is still valid; the host should reconcile.
	PersistenceFailed bool
}

// DeliveryOrderService orchestrates shop matching, agent assignment, and
// delivery estimation into a single create-order pass.
type DeliveryOrderService struct {
	Catalog ports.ShopCatalog
	Agents  ports.AgentStore
	Orders  ports.OrderRepository

	Ranker   RankerConfig
	Estimate EstimateConfig

	// StoreTimeout bounds each catalog and agent-store call.
	StoreTimeout time.Duration
	// AssignRetries bounds restarts after losing an assignment race.
	AssignRetries int
}

func NewDeliveryOrderService(
	catalog ports.ShopCatalog,
	agents ports.AgentStore,
	orders ports.OrderRepository,
) *DeliveryOrderService {
	return &DeliveryOrderService{
		Catalog:       catalog,
		Agents:        agents,
		Orders:        orders,
		Estimate:      DefaultEstimateConfig(),
		StoreTimeout:  defaultStoreTimeout,
		AssignRetries: defaultAssignRetries,
	}
}

// CreateOrder runs a single deterministic pass over the request:
// validate, rank shops and select the best match, assign the nearest
// available agent, estimate the delivery window, then commit by flipping
// the chosen agent to BUSY via compare-and-set. Losing the status race
// restarts assignment against the refreshed agent set, a bounded number
// of times; there is no other fallback cascading here. Callers wanting
// to re-match after a failure re-invoke with updated input.
func (s *DeliveryOrderService) CreateOrder(
	ctx context.Context,
	req CreateOrderRequest,
) (_ *CreateOrderResult, err error) {
	defer obs.Time(ctx, "orders.Create")(&err)

	// VALIDATING
	dish := strings.TrimSpace(req.Dish)
	if dish == "" {
		return nil, newFailure(FailureInvalidRequest, "dish name is required")
	}
	if req.Servings < 1 {
		return nil, newFailure(FailureInvalidRequest, "servings must be at least 1")
	}
	if len(req.Ingredients) == 0 {
		return nil, newFailure(FailureInvalidRequest, "ingredient list must not be empty")
	}

	// MATCHING_SHOP
	shops, err := s.listShops(ctx)
	if err != nil {
		return nil, err
	}

	ranked := RankShops(ctx, req.Ingredients, shops, req.Origin, s.Ranker)
	best, err := SelectBestShop(ranked)
	if err != nil {
		return nil, err
	}

	// ASSIGNING_AGENT (selection plus the commit compare-and-set)
	agent, agentDistance, err := s.assignAndClaim(ctx, best.Shop.Location)
	if err != nil {
		return nil, err
	}

	// ESTIMATING
	window := EstimateDelivery(s.Estimate, best.CoveragePercent, best.DistanceKm)

	// COMMITTED
	order := &domain.DeliveryOrder{
		OrderID:         "WK-" + uuid.NewString(),
		Dish:            dish,
		Servings:        req.Servings,
		Shop:            best.Shop,
		Agent:           agent,
		CoveragePercent: best.CoveragePercent,
		Available:       best.Available,
		Missing:         best.Missing,
		ShopDistanceKm:  best.DistanceKm,
		AgentDistanceKm: agentDistance,
		Estimate:        window,
		CreatedAt:       time.Now().UTC(),
	}

	result := &CreateOrderResult{Order: order, Ranked: ranked}

	// Persistence is best-effort: a failed save is reported, not fatal,
	// and the computed order is still returned to the caller.
	if s.Orders != nil {
		if saveErr := s.saveOrder(ctx, order); saveErr != nil {
			log.Printf("order persistence failed: order_id=%s err=%v", order.OrderID, saveErr)
			result.PersistenceFailed = true
		}
	}

	return result, nil
}

func (s *DeliveryOrderService) listShops(ctx context.Context) ([]*domain.Shop, error) {
	ctx, cancel := s.boundStore(ctx)
	defer cancel()

	shops, err := s.Catalog.ListShops(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, newFailure(FailureTimeout, "shop catalog timed out")
		}
		return nil, fmt.Errorf("create order: list shops: %w", err)
	}
	return shops, nil
}

// assignAndClaim selects the nearest available agent and claims it with
// a compare-and-set. Agents seen losing their AVAILABLE status are
// excluded from subsequent attempts so a lost race cannot re-select the
// same agent.
func (s *DeliveryOrderService) assignAndClaim(
	ctx context.Context,
	origin domain.GeoPoint,
) (*domain.DeliveryAgent, float64, error) {
	attempts := s.AssignRetries
	if attempts < 1 {
		attempts = 1
	}

	lost := make(map[string]struct{})

	for attempt := 0; attempt < attempts; attempt++ {
		agents, err := s.listAgents(ctx)
		if err != nil {
			return nil, 0, err
		}

		candidates := make([]*domain.DeliveryAgent, 0, len(agents))
		for _, a := range agents {
			if _, ok := lost[a.ID]; ok {
				continue
			}
			candidates = append(candidates, a)
		}

		agent, dist, err := AssignNearestAgent(candidates, origin)
		if err != nil {
			return nil, 0, err
		}

		casErr := s.claimAgent(ctx, agent.ID)
		if casErr == nil {
			committed := *agent
			committed.Status = domain.AgentBusy
			return &committed, dist, nil
		}
		if errors.Is(casErr, ports.ErrStatusConflict) {
			lost[agent.ID] = struct{}{}
			continue
		}
		return nil, 0, casErr
	}

	return nil, 0, newFailure(FailureNoAgentAvailable, "no delivery agents available after retries")
}

func (s *DeliveryOrderService) listAgents(ctx context.Context) ([]*domain.DeliveryAgent, error) {
	ctx, cancel := s.boundStore(ctx)
	defer cancel()

	agents, err := s.Agents.ListAgents(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, newFailure(FailureTimeout, "agent store timed out")
		}
		return nil, fmt.Errorf("create order: list agents: %w", err)
	}
	return agents, nil
}

func (s *DeliveryOrderService) claimAgent(ctx context.Context, agentID string) error {
	ctx, cancel := s.boundStore(ctx)
	defer cancel()

	err := s.Agents.CompareAndSetStatus(ctx, agentID, domain.AgentAvailable, domain.AgentBusy)
	if err == nil || errors.Is(err, ports.ErrStatusConflict) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newFailure(FailureTimeout, "agent store timed out")
	}
	return fmt.Errorf("create order: claim agent %q: %w", agentID, err)
}

func (s *DeliveryOrderService) saveOrder(ctx context.Context, order *domain.DeliveryOrder) error {
	ctx, cancel := s.boundStore(ctx)
	defer cancel()
	return s.Orders.SaveOrder(ctx, order)
}

func (s *DeliveryOrderService) boundStore(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.StoreTimeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
