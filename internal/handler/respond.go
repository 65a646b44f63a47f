package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/AlexZinkM/wallet-approval/internal/client"
	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/session"
	"github.com/AlexZinkM/wallet-approval/internal/transfer"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"go.uber.org/zap"
)

// SessionHeader carries the session id between the browser and this server.
const SessionHeader = "X-Session-ID"

const maxRequestBody = 64 << 10

// Error codes sent in model.ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeSessionRequired  = "session_required"
	CodeAuthRequired     = "authentication_required"
	CodeNotFound         = "not_found"
	CodeNoWallet         = "no_wallet"
	CodeTransferRejected = "transfer_rejected"
	CodeTransferFailed   = "transfer_failed"
	CodeFlowBusy         = "flow_busy"
	CodeInvalidState     = "invalid_state"
	CodeCooldown         = "cooldown"
	CodeUnavailable      = "service_unavailable"
	CodeUpstream         = "wallet_service_error"
	CodeInternal         = "internal"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeDomainError maps errors from the wallet, transfer and session packages to HTTP answers.
func writeDomainError(w http.ResponseWriter, logger *logging.Logger, err error) {
	var (
		rejected *transfer.TransferRejectedError
		failed   *transfer.TransferFailedError
		cooldown *transfer.CooldownError
		se       *wallet.ServiceError
	)

	switch {
	case errors.Is(err, client.ErrCircuitOpen):
		writeError(w, http.StatusServiceUnavailable, CodeUnavailable, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusUnauthorized, CodeSessionRequired, err.Error())
	case errors.Is(err, transfer.ErrAuthenticationRequired):
		writeError(w, http.StatusUnauthorized, CodeAuthRequired, err.Error())
	case errors.Is(err, transfer.ErrFlowBusy):
		writeError(w, http.StatusConflict, CodeFlowBusy, err.Error())
	case errors.Is(err, transfer.ErrInvalidState):
		writeError(w, http.StatusConflict, CodeInvalidState, err.Error())
	case errors.Is(err, wallet.ErrNoWallet):
		writeError(w, http.StatusConflict, CodeNoWallet, err.Error())
	case errors.Is(err, wallet.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "Wallet not found")
	case errors.As(err, &cooldown):
		w.Header().Set("Retry-After", fmt.Sprint(int(math.Ceil(cooldown.Remaining.Seconds()))))
		writeError(w, http.StatusTooManyRequests, CodeCooldown, err.Error())
	case errors.As(err, &rejected):
		writeError(w, http.StatusBadRequest, CodeTransferRejected, rejected.Reason)
	case errors.As(err, &failed):
		writeError(w, http.StatusBadRequest, CodeTransferFailed, failed.Reason)
	case errors.As(err, &se):
		status := http.StatusBadGateway
		if se.StatusCode >= 400 && se.StatusCode < 500 {
			status = http.StatusBadRequest
		}
		writeError(w, status, CodeUpstream, se.Error())
	default:
		logging.OrGlobal(logger).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}
