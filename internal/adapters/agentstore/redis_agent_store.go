package agentstore

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"dish-delivery-service/internal/domain"
	"dish-delivery-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const agentKeyPrefix = "agent:"

// Compare-and-set on the status field of one agent hash. Running as a
// script keeps the read and the write atomic on the server.
var casStatusScript = redis.NewScript(`
local current = redis.call("HGET", KEYS[1], "status")
if current == ARGV[1] then
  redis.call("HSET", KEYS[1], "status", ARGV[2])
  return 1
end
return 0
`)

// Redis-backed implementation of the AgentStore port. Each agent is one
// hash (agent:<id> with fields name, lat, lng, status); status
// transitions go through a server-side compare-and-set so concurrent
// assignments serialize per agent.
type RedisAgentStore struct {
	client *redis.Client
}

func NewRedisAgentStore(addr, password string) (*RedisAgentStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisAgentStore{client: client}, nil
}

// NewRedisAgentStoreFromClient wraps an existing client (tests).
func NewRedisAgentStoreFromClient(client *redis.Client) *RedisAgentStore {
	return &RedisAgentStore{client: client}
}

func agentKey(id string) string { return agentKeyPrefix + id }

// Return all agents, sorted by id. SCAN order is unspecified, so the
// sort keeps downstream tie-breaking stable.
func (s *RedisAgentStore) ListAgents(ctx context.Context) ([]*domain.DeliveryAgent, error) {
	agents := make([]*domain.DeliveryAgent, 0, 16)

	iter := s.client.Scan(ctx, 0, agentKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		fields, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("list agents: read %q: %w", key, err)
		}
		if len(fields) == 0 {
			// Key expired between SCAN and HGETALL.
			continue
		}

		agent, err := agentFromFields(strings.TrimPrefix(key, agentKeyPrefix), fields)
		if err != nil {
			return nil, fmt.Errorf("list agents: decode %q: %w", key, err)
		}
		agents = append(agents, agent)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list agents: scan: %w", err)
	}

	slices.SortFunc(agents, func(a, b *domain.DeliveryAgent) int {
		return strings.Compare(a.ID, b.ID)
	})

	return agents, nil
}

// Flip the agent's status only if it still matches expected.
func (s *RedisAgentStore) CompareAndSetStatus(
	ctx context.Context,
	agentID string,
	expected, next domain.AgentStatus,
) error {
	n, err := casStatusScript.Run(
		ctx, s.client,
		[]string{agentKey(agentID)},
		string(expected), string(next),
	).Int()
	if err != nil {
		return fmt.Errorf("cas agent %q: %w", agentID, err)
	}
	if n == 0 {
		return ports.ErrStatusConflict
	}
	return nil
}

// PutAgent creates or replaces an agent hash. Used by seeding and by
// hosts that own agent lifecycle.
func (s *RedisAgentStore) PutAgent(ctx context.Context, agent *domain.DeliveryAgent) error {
	err := s.client.HSet(ctx, agentKey(agent.ID), map[string]any{
		"name":   agent.Name,
		"lat":    agent.Location.Lat,
		"lng":    agent.Location.Lng,
		"status": string(agent.Status),
	}).Err()
	if err != nil {
		return fmt.Errorf("put agent %q: %w", agent.ID, err)
	}
	return nil
}

func agentFromFields(id string, fields map[string]string) (*domain.DeliveryAgent, error) {
	lat, err := strconv.ParseFloat(fields["lat"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat %q: %w", fields["lat"], err)
	}
	lng, err := strconv.ParseFloat(fields["lng"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lng %q: %w", fields["lng"], err)
	}

	status := domain.AgentStatus(fields["status"])
	switch status {
	case domain.AgentAvailable, domain.AgentBusy:
	default:
		return nil, fmt.Errorf("invalid status %q", fields["status"])
	}

	return &domain.DeliveryAgent{
		ID:       id,
		Name:     fields["name"],
		Location: domain.GeoPoint{Lat: lat, Lng: lng},
		Status:   status,
	}, nil
}
