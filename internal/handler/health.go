package handler

import (
	"net/http"

	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/session"
)

// CircuitReporter reports the WalletService circuit breaker state.
type CircuitReporter interface {
	State() metrics.CircuitState
}

// HealthHandler serves GET /health
type HealthHandler struct {
	sessions *session.Manager
	circuit  CircuitReporter
}

// NewHealthHandler creates a new HealthHandler. circuit may be nil.
func NewHealthHandler(sessions *session.Manager, circuit CircuitReporter) *HealthHandler {
	return &HealthHandler{sessions: sessions, circuit: circuit}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Reports server status and the WalletService circuit breaker state. Degraded while the circuit is open.
// @Tags         system
// @Produce      json
// @Success      200  {object}  model.HealthResponse
// @Failure      503  {object}  model.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp := model.HealthResponse{
		Status:         "ok",
		WalletService:  metrics.CircuitClosed.String(),
		ActiveSessions: h.sessions.Len(),
	}
	status := http.StatusOK
	if h.circuit != nil {
		state := h.circuit.State()
		resp.WalletService = state.String()
		if state == metrics.CircuitOpen {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}
