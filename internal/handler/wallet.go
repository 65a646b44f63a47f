package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/credential"
	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/session"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
)

// WalletHandler serves the session-scoped wallet endpoints
type WalletHandler struct {
	sessions *session.Manager
	logger   *logging.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(sessions *session.Manager, logger *logging.Logger) *WalletHandler {
	return &WalletHandler{
		sessions: sessions,
		logger:   logging.OrGlobal(logger).Named("http"),
	}
}

// current returns the session named by the request header.
func (h *WalletHandler) current(r *http.Request) (*session.Entry, error) {
	return h.sessions.Get(r.Header.Get(SessionHeader))
}

func (h *WalletHandler) respondWallet(ctx context.Context, w http.ResponseWriter, e *session.Entry, opts wallet.ViewOptions) {
	view, err := e.Wallet.View(ctx, opts)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.Header().Set(SessionHeader, e.ID)
	writeJSON(w, http.StatusOK, model.WalletResponse{SessionID: e.ID, View: view})
}

// Create handles POST /wallet/create
// @Summary      Create wallet
// @Description  Creates a wallet in WalletService and opens a session for it. The private key is shown once.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	e := h.sessions.Create(nil)
	if _, err := e.Wallet.Create(r.Context()); err != nil {
		h.sessions.Delete(e.ID)
		writeDomainError(w, h.logger, err)
		return
	}

	h.respondWallet(r.Context(), w, e, wallet.ViewOptions{RevealKey: true, WithQR: true})
}

// Access handles POST /wallet/access
// @Summary      Access wallet
// @Description  Opens a session for an existing wallet. Without a private key the session is view-only.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.AccessRequest  true  "Wallet address and optional private key"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/access [post]
func (h *WalletHandler) Access(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.AccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	req.Address = strings.TrimSpace(req.Address)
	if !common.IsValidAddress(req.Address) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid wallet address")
		return
	}

	var creds wallet.CredentialProvider
	if key := strings.TrimSpace(req.PrivateKey); key != "" {
		creds = credential.Static{req.Address: key}
	}

	// A new session per access keeps keys from different wallets apart
	if old := r.Header.Get(SessionHeader); old != "" {
		h.sessions.Delete(old)
	}
	e := h.sessions.Create(creds)
	if _, err := e.Wallet.Access(r.Context(), req.Address); err != nil {
		h.sessions.Delete(e.ID)
		writeDomainError(w, h.logger, err)
		return
	}

	h.respondWallet(r.Context(), w, e, wallet.ViewOptions{WithQR: true})
}

// Get handles GET /wallet
// @Summary      Get active wallet
// @Description  Refreshes the balance and returns the wallet with its transactions, newest first
// @Tags         wallet
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  model.WalletResponse
// @Failure      401           {object}  model.ErrorResponse
// @Router       /wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	e, err := h.current(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if _, err := e.Wallet.Refresh(r.Context()); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.respondWallet(r.Context(), w, e, wallet.ViewOptions{WithQR: true})
}

// Transactions handles GET /wallet/transactions
// @Summary      Get wallet transactions
// @Description  Gets the transactions of the active wallet with filtering capability
// @Tags         wallet
// @Produce      json
// @Param        X-Session-ID  header    string  true   "Session id"
// @Param        direction     query     string  false  "sent or received"
// @Param        from          query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to            query     string  false  "End date (YYYY-MM-DD)"
// @Param        minAmount     query     string  false  "Minimum amount in ETH"
// @Param        maxAmount     query     string  false  "Maximum amount in ETH"
// @Success      200           {object}  model.WalletResponse
// @Failure      400           {object}  model.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	e, err := h.current(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	filter, err := parseFilter(r)
	if err == nil {
		err = filter.Validate()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	h.respondWallet(r.Context(), w, e, wallet.ViewOptions{Filter: filter})
}

// Close handles DELETE /session
// @Summary      Close session
// @Description  Ends the session and wipes the private key from memory
// @Tags         wallet
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session id"
// @Success      200           {object}  model.SuccessResponse
// @Router       /session [delete]
func (h *WalletHandler) Close(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	h.sessions.Delete(r.Header.Get(SessionHeader))
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Session closed"})
}

func parseFilter(r *http.Request) (*wallet.Filter, error) {
	q := r.URL.Query()
	var f wallet.Filter

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := q.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, errInvalidParam("from", "use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		f.From = &t
	}
	if toStr := q.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, errInvalidParam("to", "use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}

	if dir := q.Get("direction"); dir != "" {
		d := wallet.Direction(strings.ToLower(dir))
		f.Direction = &d
	}

	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{{"minAmount", &f.MinAmount}, {"maxAmount", &f.MaxAmount}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return nil, errInvalidParam(p.name, "must be a non-negative number")
		}
		*p.dst = &d
	}

	return &f, nil
}

type paramError struct {
	name, hint string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + ": " + e.hint
}

func errInvalidParam(name, hint string) error {
	return &paramError{name: name, hint: hint}
}
