package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// WalletService sends only Error; our own HTTP front also sets Code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
