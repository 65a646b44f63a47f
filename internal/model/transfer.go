package model

// PrepareRequest represents request for POST /api/transfer/prepare
type PrepareRequest struct {
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	AmountUSD   Amount `json:"amount_usd"`
}

// PrepareResponse represents response for POST /api/transfer/prepare
type PrepareResponse struct {
	Message   string `json:"message"`
	AmountETH Amount `json:"amount_eth"`
	AmountUSD Amount `json:"amount_usd"`
}

// SignRequest represents request for POST /api/transfer/sign
type SignRequest struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	Message    string `json:"message"`
}

// SignResponse represents response for POST /api/transfer/sign
type SignResponse struct {
	Signature string `json:"signature"`
}

// ExecuteRequest represents request for POST /api/transfer/execute
type ExecuteRequest struct {
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	AmountETH   Amount `json:"amount_eth"`
	Message     string `json:"message"`
	Signature   string `json:"signature"`
}

// ExecuteResponse represents response for POST /api/transfer/execute
// Success is optional; only an explicit false marks a failed execution.
type ExecuteResponse struct {
	Success    *bool  `json:"success,omitempty"`
	Message    string `json:"message"`
	NewBalance Amount `json:"new_balance"`
}
