package model

import "github.com/shopspring/decimal"

// Amount is a decimal that is written as a bare JSON number.
// WalletService does arithmetic on the values it receives, so quoted strings are not accepted there.
// Reading accepts both numbers and strings.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
