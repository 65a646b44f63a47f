package model

// CreateWalletResponse represents WalletService response for POST /api/wallet/create
type CreateWalletResponse struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	Balance    Amount `json:"balance"`
}

// BalanceResponse represents WalletService response for GET /api/wallet/{address}/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Balance Amount `json:"balance"`
}
