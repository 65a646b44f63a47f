package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when WalletService does not know the requested wallet.
var ErrNotFound = errors.New("wallet not found")

// ServiceError is a failure reported by WalletService.
// Reason is the service's own message and is passed to the user untouched.
type ServiceError struct {
	StatusCode int
	Reason     string
}

func (e *ServiceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("wallet service returned status %d", e.StatusCode)
	}
	return e.Reason
}

// Reason extracts the user-facing reason from err.
// Service errors yield the service's message; anything else yields err.Error().
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

// CreatedWallet is what WalletService hands back for a new wallet.
type CreatedWallet struct {
	Address    string
	PrivateKey string
	Balance    decimal.Decimal
}

// TransactionRecord is a read-only ledger entry owned by WalletService.
type TransactionRecord struct {
	ID          int64
	FromAddress string
	ToAddress   string
	Amount      decimal.Decimal
	Signature   string
	Timestamp   time.Time
}

// QuoteRequest asks the service to convert and validate a transfer.
type QuoteRequest struct {
	FromAddress string
	ToAddress   string
	AmountUSD   decimal.Decimal
}

// Quote is the service's answer to a QuoteRequest.
// Message is the canonical payload that gets signed.
type Quote struct {
	Message   string
	AmountETH decimal.Decimal
	AmountUSD decimal.Decimal
}

// SignRequest submits the approved message for signing.
type SignRequest struct {
	Address    string
	PrivateKey string
	Message    string
}

// Execution commits a signed transfer.
type Execution struct {
	FromAddress string
	ToAddress   string
	AmountETH   decimal.Decimal
	Message     string
	Signature   string
}

// Service is the WalletService contract consumed by this application.
type Service interface {
	CreateWallet(ctx context.Context) (*CreatedWallet, error)
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	GetTransactions(ctx context.Context, address string) ([]TransactionRecord, error)
	PrepareTransfer(ctx context.Context, req QuoteRequest) (*Quote, error)
	SignTransfer(ctx context.Context, req SignRequest) (string, error)
	ExecuteTransfer(ctx context.Context, req Execution) (decimal.Decimal, error)
}

// PriceSource provides the ETH/USD rate for display.
type PriceSource interface {
	ETHPriceUSD(ctx context.Context) (decimal.Decimal, error)
}

// ErrNoCredential is returned by a CredentialProvider when the user declines to supply a key.
var ErrNoCredential = errors.New("no private key supplied")

// CredentialProvider obtains the private key for an address.
// Implementations must return ErrNoCredential (possibly wrapped) when the user gives none.
type CredentialProvider interface {
	PrivateKey(ctx context.Context, address string) ([]byte, error)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(ctx context.Context, address string) ([]byte, error)

// PrivateKey calls f.
func (f CredentialFunc) PrivateKey(ctx context.Context, address string) ([]byte, error) {
	return f(ctx, address)
}
