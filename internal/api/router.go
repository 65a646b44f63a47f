package api

import (
	"net/http"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/handler"
	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/session"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP front is built from.
type Deps struct {
	Sessions *session.Manager
	// Circuit is optional; without it /health always reports a closed circuit.
	Circuit handler.CircuitReporter
	// Metrics serves /metrics when set.
	Metrics http.Handler
	Logger  *logging.Logger
}

// SetupRouter sets up router with handlers
func SetupRouter(deps Deps) http.Handler {
	logger := logging.OrGlobal(deps.Logger)

	walletHandler := handler.NewWalletHandler(deps.Sessions, logger)
	transferHandler := handler.NewTransferHandler(deps.Sessions, logger)
	healthHandler := handler.NewHealthHandler(deps.Sessions, deps.Circuit)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/health", healthHandler.Health)
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics)
	}

	// Wallet endpoints
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/access", walletHandler.Access)
	mux.HandleFunc("/wallet", walletHandler.Get)
	mux.HandleFunc("/wallet/transactions", walletHandler.Transactions)
	mux.HandleFunc("/session", walletHandler.Close)

	// Transfer endpoints
	mux.HandleFunc("/transfer/prepare", transferHandler.Prepare)
	mux.HandleFunc("/transfer/confirm", transferHandler.Confirm)
	mux.HandleFunc("/transfer/cancel", transferHandler.Cancel)

	return withRequestLog(mux, logger.Named("http"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler, logger *logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
