package model

// CWTFile represents .cwt keyfile structure
type CWTFile struct {
	Network    string     `json:"network"`
	Address    string     `json:"address"`
	QR         string     `json:"QR"`
	KDF        *KDFParams `json:"kdf,omitempty"`
	Salt       string     `json:"salt"`
	Nonce      string     `json:"nonce"`
	CipherText string     `json:"cipherText"`
}

// KDFParams are the scrypt cost parameters a keyfile was sealed with.
// Files without them use the package defaults.
type KDFParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// KeyData represents decrypted keyfile payload
type KeyData struct {
	PrivateKey []byte `json:"privateKey"` // raw key bytes (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
