package domain

type AgentStatus string

const (
	AgentAvailable AgentStatus = "AVAILABLE"
	AgentBusy      AgentStatus = "BUSY"
)

// A delivery agent as read from the shared agent store. Lifecycle is
// owned by the store; this core only reads status and records an
// assignment outcome through a compare-and-set transition.
type DeliveryAgent struct {
	ID       string
	Name     string
	Location GeoPoint
	Status   AgentStatus
}
