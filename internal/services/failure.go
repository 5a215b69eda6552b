package services

import (
	"errors"
	"fmt"
)

// FailureKind classifies terminal outcomes of the order state machine.
type FailureKind string

const (
	FailureInvalidRequest   FailureKind = "INVALID_REQUEST"
	FailureNoShopsAvailable FailureKind = "NO_SHOPS_AVAILABLE"
	FailureNoAgentAvailable FailureKind = "NO_AGENT_AVAILABLE"
	FailureTimeout          FailureKind = "TIMEOUT"
)

// Failure is a typed, caller-visible failure returned as a value across
// the service boundary. Hosts map kinds to distinct user-facing
// messages; panics stay reserved for programming errors.
type Failure struct {
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

func newFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// AsFailure unwraps err to a *Failure if one is in its chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)
	return f, ok
}
