package ports

import (
	"context"
	"errors"

	"dish-delivery-service/internal/domain"
)

// ErrStatusConflict is returned by CompareAndSetStatus when the agent's
// current status no longer matches the expected value. It drives the
// assignment retry loop in the order service.
var ErrStatusConflict = errors.New("agent status conflict")

// Port: shared delivery-agent state. Status transitions must be atomic
// per agent id so that two concurrent assignments can never both claim
// the same agent.
type AgentStore interface {
	// Retrieve all known agents with their current status.
	ListAgents(ctx context.Context) ([]*domain.DeliveryAgent, error)
	// Flip the agent's status, but only if it still matches expected.
	// Returns ErrStatusConflict when it does not.
	CompareAndSetStatus(ctx context.Context, agentID string, expected, next domain.AgentStatus) error
}
