package client

import (
	"context"
	"errors"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned without contacting WalletService while the breaker is open.
var ErrCircuitOpen = errors.New("wallet service unavailable, try again later")

// BreakerConfig configures circuit breaker behavior.
type BreakerConfig struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// OpenTimeout is the period of the open state after which the state becomes half-open.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of trial requests allowed while half-open. Default: 1
	HalfOpenRequests uint32
}

// Breaker guards WalletService calls with a gobreaker circuit breaker.
// Only transport errors and 5xx answers count as failures: a 4xx is the
// service working as intended.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	metrics metrics.Collector
	logger  *logging.Logger
}

// NewBreaker creates a breaker.
func NewBreaker(config BreakerConfig, collector metrics.Collector, logger *logging.Logger) *Breaker {
	if config.Name == "" {
		config.Name = "wallet-service"
	}
	if config.MaxFailures == 0 {
		config.MaxFailures = 5
	}

	b := &Breaker{
		metrics: metrics.OrNoOp(collector),
		logger:  logging.OrGlobal(logger).Named("breaker"),
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.HalfOpenRequests,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			b.logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			b.metrics.RecordCircuitState(name, circuitState(to))
		},
	}
	b.cb = gobreaker.NewCircuitBreaker(settings)

	return b
}

// Execute runs fn unless the circuit is open.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

// State reports the current breaker state.
func (b *Breaker) State() metrics.CircuitState {
	return circuitState(b.cb.State())
}

func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *wallet.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode < 500
	}
	return false
}

func circuitState(s gobreaker.State) metrics.CircuitState {
	switch s {
	case gobreaker.StateOpen:
		return metrics.CircuitOpen
	case gobreaker.StateHalfOpen:
		return metrics.CircuitHalfOpen
	default:
		return metrics.CircuitClosed
	}
}
