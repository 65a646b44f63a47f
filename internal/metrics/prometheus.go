package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector for Prometheus.
type PrometheusCollector struct {
	namespace string

	transfers *prometheus.CounterVec

	serviceCalls   *prometheus.CounterVec
	serviceErrors  *prometheus.CounterVec
	serviceLatency *prometheus.HistogramVec

	circuitOpens *prometheus.CounterVec
	circuitState *prometheus.GaugeVec

	activeSessions prometheus.Gauge
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Total number of transfer flow steps by phase and outcome",
			},
			[]string{"phase", "outcome"},
		),
		serviceCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_service_calls_total",
				Help:      "Total number of WalletService calls per operation",
			},
			[]string{"op"},
		),
		serviceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_service_errors_total",
				Help:      "Total number of failed WalletService calls per operation",
			},
			[]string{"op"},
		),
		serviceLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "wallet_service_call_duration_seconds",
				Help:      "WalletService call latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		circuitOpens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_opens_total",
				Help:      "Total number of times the circuit breaker opened",
			},
			[]string{"name"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"name"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of live wallet sessions",
			},
		),
	}
}

// Register registers all metrics with the given Prometheus registerer.
func (pc *PrometheusCollector) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		pc.transfers,
		pc.serviceCalls,
		pc.serviceErrors,
		pc.serviceLatency,
		pc.circuitOpens,
		pc.circuitState,
		pc.activeSessions,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordTransfer records one transfer flow step.
func (pc *PrometheusCollector) RecordTransfer(phase, outcome string) {
	pc.transfers.WithLabelValues(phase, outcome).Inc()
}

// RecordServiceCall records a WalletService call.
func (pc *PrometheusCollector) RecordServiceCall(op string, success bool, duration time.Duration) {
	pc.serviceCalls.WithLabelValues(op).Inc()
	if !success {
		pc.serviceErrors.WithLabelValues(op).Inc()
	}
	pc.serviceLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordCircuitState records the current circuit breaker state.
func (pc *PrometheusCollector) RecordCircuitState(name string, state CircuitState) {
	pc.circuitState.WithLabelValues(name).Set(float64(state))
	if state == CircuitOpen {
		pc.circuitOpens.WithLabelValues(name).Inc()
	}
}

// SetActiveSessions records the number of live sessions.
func (pc *PrometheusCollector) SetActiveSessions(n int) {
	pc.activeSessions.Set(float64(n))
}
