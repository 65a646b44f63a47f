package model

import "github.com/AlexZinkM/wallet-approval/internal/wallet"

// AccessRequest represents request for POST /wallet/access
type AccessRequest struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey,omitempty"` // empty for a view-only session
}

// TransferRequest represents request for POST /transfer/prepare
type TransferRequest struct {
	FromAddress string `json:"fromAddress,omitempty"`
	ToAddress   string `json:"toAddress"`
	AmountUSD   Amount `json:"amountUsd" swaggertype:"number"`
}

// WalletResponse is the active wallet of a session
type WalletResponse struct {
	SessionID string `json:"sessionId"`
	*wallet.View
}

// SuccessResponse is returned by endpoints with nothing else to report
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse represents response for GET /health
type HealthResponse struct {
	Status         string `json:"status"`
	WalletService  string `json:"walletService"`
	ActiveSessions int    `json:"activeSessions"`
}
