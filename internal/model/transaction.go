package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// sqlTimestampLayout is the CURRENT_TIMESTAMP format WalletService stores (UTC, no zone).
const sqlTimestampLayout = "2006-01-02 15:04:05"

// Timestamp accepts RFC 3339 and SQL datetime strings.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, sqlTimestampLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Transaction represents one ledger row returned by WalletService
type Transaction struct {
	ID          int64     `json:"id,omitempty"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      Amount    `json:"amount"`
	Signature   string    `json:"signature,omitempty"`
	Timestamp   Timestamp `json:"timestamp"`
}

// TransactionsResponse represents response for GET /api/wallet/{address}/transactions
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
