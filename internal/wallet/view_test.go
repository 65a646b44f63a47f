package wallet_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleRecords() []wallet.TransactionRecord {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []wallet.TransactionRecord{
		{ID: 1, FromAddress: "0xaaaa", ToAddress: "0xbbbb", Amount: dec("0.5"), Timestamp: base},
		{ID: 2, FromAddress: "0xCCCC", ToAddress: "0xAAAA", Amount: dec("1.25"), Timestamp: base.Add(2 * time.Hour)},
		{ID: 3, FromAddress: "0xAaAa", ToAddress: "0xdddd", Amount: dec("0.05"), Timestamp: base.Add(time.Hour)},
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	sent := wallet.Classify("0xAAAA", wallet.TransactionRecord{FromAddress: "0xaaaa", ToAddress: "0xB", Amount: dec("0.05")})
	assert.Equal(t, wallet.DirectionSent, sent.Direction)
	assert.Equal(t, "Sent", sent.Label)
	assert.Equal(t, "To", sent.CounterpartyLabel)
	assert.Equal(t, "0xB", sent.Counterparty)
	assert.Equal(t, "0.050000 ETH", sent.AmountText)

	received := wallet.Classify("0xaaaa", wallet.TransactionRecord{FromAddress: "0xC", ToAddress: "0xAAAA", Amount: dec("1")})
	assert.Equal(t, wallet.DirectionReceived, received.Direction)
	assert.Equal(t, "From", received.CounterpartyLabel)
	assert.Equal(t, "0xC", received.Counterparty)
}

func TestBuildView_OrdersNewestFirstAndTotals(t *testing.T) {
	h := wallet.NewHandle("0xAAAA", dec("1.95"), []byte("secret"))

	v, err := wallet.BuildView(h, sampleRecords(), wallet.ViewOptions{})
	require.NoError(t, err)

	assert.Equal(t, "1.9500 ETH", v.BalanceText)
	assert.True(t, v.HasPrivateKey)
	assert.Equal(t, "••••••••", v.PrivateKey)
	assert.Empty(t, v.EmptyMessage)
	assert.Empty(t, v.QR)
	assert.Empty(t, v.BalanceUSD)

	require.Len(t, v.Transactions, 3)
	assert.Equal(t, int64(2), v.Transactions[0].ID)
	assert.Equal(t, int64(3), v.Transactions[1].ID)
	assert.Equal(t, int64(1), v.Transactions[2].ID)

	assert.True(t, v.TotalSent.Equal(dec("0.55")), v.TotalSent.String())
	assert.True(t, v.TotalReceived.Equal(dec("1.25")), v.TotalReceived.String())
}

func TestBuildView_EmptyHistory(t *testing.T) {
	h := wallet.NewHandle("0xAAAA", dec("5"), nil)

	v, err := wallet.BuildView(h, nil, wallet.ViewOptions{RevealKey: true})
	require.NoError(t, err)

	assert.Empty(t, v.Transactions)
	assert.Equal(t, "No transactions yet", v.EmptyMessage)
	assert.False(t, v.HasPrivateKey)
	assert.Equal(t, "••••••••", v.PrivateKey, "nothing to reveal on a view-only wallet")
}

func TestBuildView_RevealPriceAndQR(t *testing.T) {
	h := wallet.NewHandle("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", dec("2"), []byte("0xkey"))

	v, err := wallet.BuildView(h, nil, wallet.ViewOptions{
		RevealKey: true,
		WithQR:    true,
		PriceUSD:  dec("1950.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", v.Address)
	assert.Equal(t, "0xkey", v.PrivateKey)
	assert.Equal(t, "$3901.00", v.BalanceUSD)

	png, err := base64.StdEncoding.DecodeString(v.QR)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestBuildView_Filter(t *testing.T) {
	h := wallet.NewHandle("0xAAAA", dec("1"), nil)
	sent := wallet.DirectionSent
	minAmount := dec("0.1")

	v, err := wallet.BuildView(h, sampleRecords(), wallet.ViewOptions{
		Filter: &wallet.Filter{Direction: &sent, MinAmount: &minAmount},
	})
	require.NoError(t, err)

	require.Len(t, v.Transactions, 1)
	assert.Equal(t, int64(1), v.Transactions[0].ID)
	assert.True(t, v.TotalReceived.IsZero())
}

func TestFilter_Validate(t *testing.T) {
	bad := wallet.Direction("sideways")
	from := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	lo, hi := dec("2"), dec("1")

	tests := []struct {
		name   string
		filter *wallet.Filter
		ok     bool
	}{
		{"nil filter", nil, true},
		{"empty filter", &wallet.Filter{}, true},
		{"bad direction", &wallet.Filter{Direction: &bad}, false},
		{"inverted dates", &wallet.Filter{From: &from, To: &to}, false},
		{"inverted amounts", &wallet.Filter{MinAmount: &lo, MaxAmount: &hi}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBuildView_NoHandle(t *testing.T) {
	_, err := wallet.BuildView(nil, nil, wallet.ViewOptions{})
	assert.Error(t, err)
}
