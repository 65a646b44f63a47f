package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/session"
)

// TransferHandler serves the prepare, confirm and cancel steps of a transfer
type TransferHandler struct {
	sessions *session.Manager
	logger   *logging.Logger
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(sessions *session.Manager, logger *logging.Logger) *TransferHandler {
	return &TransferHandler{
		sessions: sessions,
		logger:   logging.OrGlobal(logger).Named("http"),
	}
}

// Prepare handles POST /transfer/prepare
// @Summary      Prepare transfer
// @Description  Quotes a USD amount in ETH and validates the recipient. The returned message must be approved with /transfer/confirm.
// @Tags         transfer
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string                 true  "Session id"
// @Param        request       body      model.TransferRequest  true  "Transfer data"
// @Success      200           {object}  transfer.PendingTransfer
// @Failure      400           {object}  model.ErrorResponse
// @Failure      401           {object}  model.ErrorResponse
// @Failure      409           {object}  model.ErrorResponse
// @Failure      429           {object}  model.ErrorResponse
// @Router       /transfer/prepare [post]
func (h *TransferHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	e, err := h.sessions.Get(r.Header.Get(SessionHeader))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	var req model.TransferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	req.ToAddress = strings.TrimSpace(req.ToAddress)
	if req.ToAddress != "" && !common.IsValidAddress(req.ToAddress) {
		writeError(w, http.StatusBadRequest, CodeTransferRejected, "invalid recipient address")
		return
	}

	pending, err := e.Flow.Prepare(r.Context(), req.FromAddress, req.ToAddress, req.AmountUSD.Decimal)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pending)
}

// Confirm handles POST /transfer/confirm
// @Summary      Confirm transfer
// @Description  Approves the pending transfer: it is signed, then executed. Failures discard the pending transfer.
// @Tags         transfer
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  transfer.Receipt
// @Failure      400           {object}  model.ErrorResponse
// @Failure      401           {object}  model.ErrorResponse
// @Failure      409           {object}  model.ErrorResponse
// @Router       /transfer/confirm [post]
func (h *TransferHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	e, err := h.sessions.Get(r.Header.Get(SessionHeader))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	// A client hang-up must not split sign from execute
	receipt, err := e.Flow.Confirm(context.WithoutCancel(r.Context()))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// Cancel handles POST /transfer/cancel
// @Summary      Cancel transfer
// @Description  Discards the pending transfer without contacting WalletService
// @Tags         transfer
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  model.SuccessResponse
// @Failure      409           {object}  model.ErrorResponse
// @Router       /transfer/cancel [post]
func (h *TransferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	e, err := h.sessions.Get(r.Header.Get(SessionHeader))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if err := e.Flow.Cancel(); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Transfer cancelled"})
}
