package metrics

import (
	"time"
)

// Collector defines the interface for collecting wallet metrics.
// Implementations can export metrics to various backends.
type Collector interface {
	// Transfer flow
	RecordTransfer(phase, outcome string)

	// WalletService client
	RecordServiceCall(op string, success bool, duration time.Duration)
	RecordCircuitState(name string, state CircuitState)

	// Sessions
	SetActiveSessions(n int)
}

// Transfer phases.
const (
	PhasePrepare = "prepare"
	PhaseSign    = "sign"
	PhaseExecute = "execute"
	PhaseCancel  = "cancel"
)

// Transfer outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed means the circuit breaker is allowing requests through.
	CircuitClosed CircuitState = iota
	// CircuitOpen means the circuit breaker is blocking requests.
	CircuitOpen
	// CircuitHalfOpen means the circuit breaker is testing if the service has recovered.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// NoOpCollector is a no-op implementation of Collector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordTransfer does nothing.
func (NoOpCollector) RecordTransfer(phase, outcome string) {}

// RecordServiceCall does nothing.
func (NoOpCollector) RecordServiceCall(op string, success bool, duration time.Duration) {}

// RecordCircuitState does nothing.
func (NoOpCollector) RecordCircuitState(name string, state CircuitState) {}

// SetActiveSessions does nothing.
func (NoOpCollector) SetActiveSessions(n int) {}

// OrNoOp returns c, or a NoOpCollector when c is nil.
func OrNoOp(c Collector) Collector {
	if c == nil {
		return NoOpCollector{}
	}
	return c
}
