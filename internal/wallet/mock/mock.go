package mock

import (
	"context"
	"sync"

	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
)

// Service is a mock implementation of wallet.Service for testing.
// Function hooks customise behaviour; every call is recorded by operation name.
type Service struct {
	CreateWalletFunc    func(ctx context.Context) (*wallet.CreatedWallet, error)
	GetBalanceFunc      func(ctx context.Context, address string) (decimal.Decimal, error)
	GetTransactionsFunc func(ctx context.Context, address string) ([]wallet.TransactionRecord, error)
	PrepareTransferFunc func(ctx context.Context, req wallet.QuoteRequest) (*wallet.Quote, error)
	SignTransferFunc    func(ctx context.Context, req wallet.SignRequest) (string, error)
	ExecuteTransferFunc func(ctx context.Context, req wallet.Execution) (decimal.Decimal, error)

	mu    sync.Mutex
	calls []string
}

// Operation names recorded by Calls.
const (
	OpCreateWallet    = "createWallet"
	OpGetBalance      = "getBalance"
	OpGetTransactions = "getTransactions"
	OpPrepareTransfer = "prepareTransfer"
	OpSignTransfer    = "signTransfer"
	OpExecuteTransfer = "executeTransfer"
)

func (m *Service) record(op string) {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	m.mu.Unlock()
}

// Calls returns the operations invoked so far, in order.
func (m *Service) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times op was invoked.
func (m *Service) CallCount(op string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// CreateWallet implements wallet.Service.
func (m *Service) CreateWallet(ctx context.Context) (*wallet.CreatedWallet, error) {
	m.record(OpCreateWallet)
	if m.CreateWalletFunc != nil {
		return m.CreateWalletFunc(ctx)
	}
	return &wallet.CreatedWallet{Address: "0xNEW", PrivateKey: "0xkey", Balance: decimal.NewFromInt(5)}, nil
}

// GetBalance implements wallet.Service.
func (m *Service) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	m.record(OpGetBalance)
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, address)
	}
	return decimal.Zero, nil
}

// GetTransactions implements wallet.Service.
func (m *Service) GetTransactions(ctx context.Context, address string) ([]wallet.TransactionRecord, error) {
	m.record(OpGetTransactions)
	if m.GetTransactionsFunc != nil {
		return m.GetTransactionsFunc(ctx, address)
	}
	return nil, nil
}

// PrepareTransfer implements wallet.Service.
func (m *Service) PrepareTransfer(ctx context.Context, req wallet.QuoteRequest) (*wallet.Quote, error) {
	m.record(OpPrepareTransfer)
	if m.PrepareTransferFunc != nil {
		return m.PrepareTransferFunc(ctx, req)
	}
	return &wallet.Quote{Message: "Transfer to " + req.ToAddress, AmountETH: decimal.Zero, AmountUSD: req.AmountUSD}, nil
}

// SignTransfer implements wallet.Service.
func (m *Service) SignTransfer(ctx context.Context, req wallet.SignRequest) (string, error) {
	m.record(OpSignTransfer)
	if m.SignTransferFunc != nil {
		return m.SignTransferFunc(ctx, req)
	}
	return "sig", nil
}

// ExecuteTransfer implements wallet.Service.
func (m *Service) ExecuteTransfer(ctx context.Context, req wallet.Execution) (decimal.Decimal, error) {
	m.record(OpExecuteTransfer)
	if m.ExecuteTransferFunc != nil {
		return m.ExecuteTransferFunc(ctx, req)
	}
	return decimal.Zero, nil
}
