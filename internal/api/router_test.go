package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/handler"
	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/session"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"
	"github.com/AlexZinkM/wallet-approval/internal/wallet/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	bob   = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

type openCircuit struct{}

func (openCircuit) State() metrics.CircuitState { return metrics.CircuitOpen }

func newRouter(t *testing.T, circuit handler.CircuitReporter) http.Handler {
	t.Helper()

	svc := &mock.Service{
		GetBalanceFunc: func(context.Context, string) (decimal.Decimal, error) {
			return decimal.NewFromInt(2), nil
		},
		PrepareTransferFunc: func(_ context.Context, req wallet.QuoteRequest) (*wallet.Quote, error) {
			return &wallet.Quote{Message: "Transfer to " + req.ToAddress, AmountETH: decimal.RequireFromString("0.05"), AmountUSD: req.AmountUSD}, nil
		},
		ExecuteTransferFunc: func(context.Context, wallet.Execution) (decimal.Decimal, error) {
			return decimal.RequireFromString("1.95"), nil
		},
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector("wallet")
	require.NoError(t, collector.Register(registry))

	sessions := session.NewManager(session.Config{
		Service:  svc,
		TTL:      time.Minute,
		Cooldown: time.Minute,
		Metrics:  collector,
	})
	return SetupRouter(Deps{
		Sessions: sessions,
		Circuit:  circuit,
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
}

func do(t *testing.T, h http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(handler.SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_TransferCooldownAndMetrics(t *testing.T) {
	h := newRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/wallet/access", "", `{"address":"`+alice+`","privateKey":"0xsecret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := rec.Header().Get(handler.SessionHeader)
	require.NotEmpty(t, id)

	transfer := `{"toAddress":"` + bob + `","amountUsd":100}`
	rec = do(t, h, http.MethodPost, "/transfer/prepare", id, transfer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodPost, "/transfer/confirm", id, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/transfer/prepare", id, transfer)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), handler.CodeCooldown)

	rec = do(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `wallet_transfers_total{outcome="success",phase="execute"} 1`)
	assert.Contains(t, body, "wallet_active_sessions 1")
}

func TestRouter_HealthDegradedWhenCircuitOpen(t *testing.T) {
	rec := do(t, newRouter(t, openCircuit{}), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
}

func TestRouter_UnknownSession(t *testing.T) {
	rec := do(t, newRouter(t, nil), http.MethodGet, "/wallet", "3b241101-e2bb-4255-8caf-4136c566a962", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.CodeSessionRequired)
}
