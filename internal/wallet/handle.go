package wallet

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Handle is the in-memory representation of the active wallet.
// The private key is optional and never leaves process memory except in a sign request.
type Handle struct {
	address string

	mu         sync.RWMutex
	balance    decimal.Decimal
	privateKey []byte
}

// NewHandle creates a handle. privateKey may be nil for a view-only wallet.
// The handle keeps its own copy of the key.
func NewHandle(address string, balance decimal.Decimal, privateKey []byte) *Handle {
	h := &Handle{address: address, balance: balance}
	if len(privateKey) > 0 {
		h.privateKey = append([]byte(nil), privateKey...)
	}
	return h
}

// Address returns the wallet address as the service reported it.
func (h *Handle) Address() string {
	return h.address
}

// Balance returns the last known balance.
func (h *Handle) Balance() decimal.Decimal {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.balance
}

// SetBalance replaces the known balance.
func (h *Handle) SetBalance(b decimal.Decimal) {
	h.mu.Lock()
	h.balance = b
	h.mu.Unlock()
}

// HasPrivateKey reports whether signing material is present.
func (h *Handle) HasPrivateKey() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.privateKey) > 0
}

// PrivateKey returns the key as a string for a sign request, or "" when absent.
func (h *Handle) PrivateKey() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return string(h.privateKey)
}

// Wipe zeroes and drops the private key.
func (h *Handle) Wipe() {
	h.mu.Lock()
	clear(h.privateKey)
	h.privateKey = nil
	h.mu.Unlock()
}
