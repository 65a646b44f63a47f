package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/wallet-approval/internal/logging"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoWallet is returned when a session operation needs a wallet and none is active.
var ErrNoWallet = errors.New("no active wallet")

// Session owns the active wallet handle of one user.
// It replaces page-level globals: callers create one per user and pass it to a transfer flow.
type Session struct {
	svc    Service
	creds  CredentialProvider
	prices PriceSource
	logger *logging.Logger

	mu     sync.Mutex
	handle *Handle
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPriceSource enables USD valuation of the balance.
func WithPriceSource(p PriceSource) SessionOption {
	return func(s *Session) { s.prices = p }
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession creates an empty session. creds may be nil, in which case accessed wallets are view-only.
func NewSession(svc Service, creds CredentialProvider, opts ...SessionOption) *Session {
	s := &Session{svc: svc, creds: creds}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrGlobal(s.logger).Named("session")
	return s
}

// Handle returns the active wallet handle, or nil.
func (s *Session) Handle() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Service returns the WalletService the session talks to.
func (s *Session) Service() Service {
	return s.svc
}

func (s *Session) replace(h *Handle) {
	s.mu.Lock()
	old := s.handle
	s.handle = h
	s.mu.Unlock()
	if old != nil && old != h {
		old.Wipe()
	}
}

// Create asks the service for a new wallet and makes it active.
// The returned handle carries the private key issued by the service.
func (s *Session) Create(ctx context.Context) (*Handle, error) {
	created, err := s.svc.CreateWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	key := []byte(created.PrivateKey)
	h := NewHandle(created.Address, created.Balance, key)
	clear(key)
	s.replace(h)

	s.logger.Info("wallet created", zap.String("address", created.Address))
	return h, nil
}

// Access looks up an existing wallet and makes it active.
// The private key comes from the credential provider; when none is given the wallet is view-only.
func (s *Session) Access(ctx context.Context, address string) (*Handle, error) {
	balance, err := s.svc.GetBalance(ctx, address)
	if err != nil {
		return nil, err
	}

	var key []byte
	if s.creds != nil {
		key, err = s.creds.PrivateKey(ctx, address)
		if err != nil && !errors.Is(err, ErrNoCredential) {
			return nil, fmt.Errorf("failed to obtain private key: %w", err)
		}
	}
	h := NewHandle(address, balance, key)
	clear(key)
	s.replace(h)

	s.logger.Info("wallet accessed",
		zap.String("address", address),
		zap.Bool("view_only", !h.HasPrivateKey()),
	)
	return h, nil
}

// Refresh reloads the balance of the active wallet.
func (s *Session) Refresh(ctx context.Context) (decimal.Decimal, error) {
	h := s.Handle()
	if h == nil {
		return decimal.Zero, ErrNoWallet
	}
	balance, err := s.svc.GetBalance(ctx, h.Address())
	if err != nil {
		return decimal.Zero, err
	}
	h.SetBalance(balance)
	return balance, nil
}

// Transactions loads the ledger of the active wallet.
func (s *Session) Transactions(ctx context.Context) ([]TransactionRecord, error) {
	h := s.Handle()
	if h == nil {
		return nil, ErrNoWallet
	}
	return s.svc.GetTransactions(ctx, h.Address())
}

// View loads transactions (and the ETH price when configured) and builds the display model.
// A failing price feed only drops the USD value.
func (s *Session) View(ctx context.Context, opts ViewOptions) (*View, error) {
	h := s.Handle()
	if h == nil {
		return nil, ErrNoWallet
	}
	records, err := s.svc.GetTransactions(ctx, h.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if s.prices != nil && opts.PriceUSD.IsZero() {
		price, err := s.prices.ETHPriceUSD(ctx)
		if err != nil {
			s.logger.Warn("price feed unavailable", zap.Error(err))
		} else {
			opts.PriceUSD = price
		}
	}
	return BuildView(h, records, opts)
}

// Close wipes the private key and drops the active wallet.
func (s *Session) Close() {
	s.replace(nil)
}
