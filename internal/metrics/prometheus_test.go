package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc := NewPrometheusCollector("wallet")

	require.NoError(t, pc.Register(reg))
	assert.Error(t, pc.Register(reg), "double registration must fail")
}

func TestPrometheusCollector_Records(t *testing.T) {
	pc := NewPrometheusCollector("wallet")

	pc.RecordTransfer(PhaseExecute, OutcomeSuccess)
	pc.RecordTransfer(PhaseExecute, OutcomeSuccess)
	pc.RecordTransfer(PhaseSign, OutcomeFailed)
	assert.Equal(t, 2.0, testutil.ToFloat64(pc.transfers.WithLabelValues(PhaseExecute, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.transfers.WithLabelValues(PhaseSign, OutcomeFailed)))

	pc.RecordServiceCall("getBalance", true, 10*time.Millisecond)
	pc.RecordServiceCall("getBalance", false, 20*time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(pc.serviceCalls.WithLabelValues("getBalance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.serviceErrors.WithLabelValues("getBalance")))

	pc.RecordCircuitState("wallet-service", CircuitOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.circuitState.WithLabelValues("wallet-service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.circuitOpens.WithLabelValues("wallet-service")))
	pc.RecordCircuitState("wallet-service", CircuitHalfOpen)
	assert.Equal(t, 2.0, testutil.ToFloat64(pc.circuitState.WithLabelValues("wallet-service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.circuitOpens.WithLabelValues("wallet-service")))

	pc.SetActiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(pc.activeSessions))
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpCollector{}, OrNoOp(nil))
	pc := NewPrometheusCollector("x")
	assert.Same(t, pc, OrNoOp(pc))
}
