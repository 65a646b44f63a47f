package common

import (
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	BalanceDecimals = 4 // wallet balance display precision
	AmountDecimals  = 6 // transaction amount display precision
	USDDecimals     = 2
)

// SameAddress compares two addresses ignoring hex case.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IsValidAddress reports whether s is a 20-byte hex account address (with or without 0x).
func IsValidAddress(s string) bool {
	return ethcommon.IsHexAddress(strings.TrimSpace(s))
}

// DisplayAddress returns the EIP-55 checksummed form of a valid address.
// Anything that is not a hex address is returned trimmed but otherwise untouched.
func DisplayAddress(s string) string {
	s = strings.TrimSpace(s)
	if !ethcommon.IsHexAddress(s) {
		return s
	}
	return ethcommon.HexToAddress(s).Hex()
}

// FormatETH renders an amount with a fixed number of decimals and the ETH suffix.
// Example: FormatETH(decimal.RequireFromString("1.95"), 4) = "1.9500 ETH"
func FormatETH(amount decimal.Decimal, places int32) string {
	return amount.StringFixed(places) + " ETH"
}

// FormatUSD renders a dollar amount, e.g. "$3900.00".
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(USDDecimals)
}

// ParseAmount parses a user supplied decimal amount and requires it to be positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}
	return d, nil
}
