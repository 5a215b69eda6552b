package agentstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/ports"

	"go.uber.org/atomic"
)

// In-process implementation of the AgentStore port for tests and local
// runs. Compare-and-set is serialized by a single mutex.
type MemoryAgentStore struct {
	mu     sync.Mutex
	agents map[string]*domain.DeliveryAgent

	// Conflicts counts compare-and-set calls that lost the race.
	Conflicts atomic.Int64
}

func NewMemoryAgentStore(agents []*domain.DeliveryAgent) *MemoryAgentStore {
	m := make(map[string]*domain.DeliveryAgent, len(agents))
	for _, a := range agents {
		copied := *a
		m[a.ID] = &copied
	}
	return &MemoryAgentStore{agents: m}
}

func (s *MemoryAgentStore) ListAgents(ctx context.Context) ([]*domain.DeliveryAgent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.DeliveryAgent, 0, len(s.agents))
	for _, a := range s.agents {
		copied := *a
		out = append(out, &copied)
	}
	slices.SortFunc(out, func(a, b *domain.DeliveryAgent) int {
		return strings.Compare(a.ID, b.ID)
	})

	return out, nil
}

func (s *MemoryAgentStore) CompareAndSetStatus(
	ctx context.Context,
	agentID string,
	expected, next domain.AgentStatus,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agent, ok := s.agents[agentID]
	if !ok {
		return fmt.Errorf("cas agent: unknown agent %q", agentID)
	}
	if agent.Status != expected {
		s.Conflicts.Inc()
		return ports.ErrStatusConflict
	}

	agent.Status = next
	return nil
}

// Status returns an agent's current status (test helper).
func (s *MemoryAgentStore) Status(agentID string) (domain.AgentStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, ok := s.agents[agentID]
	if !ok {
		return "", false
	}
	return agent.Status, true
}
