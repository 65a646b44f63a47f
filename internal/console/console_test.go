package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/transfer"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"
	"github.com/AlexZinkM/wallet-approval/internal/wallet/mock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFlow(t *testing.T) (*mock.Service, *wallet.Session, *transfer.Flow) {
	t.Helper()

	svc := &mock.Service{
		GetBalanceFunc: func(context.Context, string) (decimal.Decimal, error) { return dec("2"), nil },
		PrepareTransferFunc: func(_ context.Context, req wallet.QuoteRequest) (*wallet.Quote, error) {
			return &wallet.Quote{Message: "Transfer 0.05 ETH to " + req.ToAddress, AmountETH: dec("0.05")}, nil
		},
		SignTransferFunc: func(context.Context, wallet.SignRequest) (string, error) { return "sig1", nil },
		ExecuteTransferFunc: func(context.Context, wallet.Execution) (decimal.Decimal, error) {
			return dec("1.95"), nil
		},
	}
	s := wallet.NewSession(svc, wallet.CredentialFunc(func(context.Context, string) ([]byte, error) {
		return []byte("0xkey"), nil
	}))
	_, err := s.Access(context.Background(), "0xA")
	require.NoError(t, err)
	return svc, s, transfer.NewFlow(s, transfer.Options{})
}

func TestConsole_TransferApproved(t *testing.T) {
	svc, s, flow := newFlow(t)
	var out bytes.Buffer
	c := New(strings.NewReader("y\n"), &out)

	r, err := c.Transfer(context.Background(), flow, "0xB", dec("100"))
	require.NoError(t, err)

	assert.Equal(t, "sig1", r.Signature)
	assert.True(t, s.Handle().Balance().Equal(dec("1.95")))
	assert.Contains(t, out.String(), "Transfer 0.05 ETH to 0xB")
	assert.Contains(t, out.String(), "Approve transfer? [y/N]: ")
	assert.Contains(t, out.String(), "New balance: 1.9500 ETH")
	assert.Equal(t, 1, svc.CallCount(mock.OpExecuteTransfer))
}

func TestConsole_TransferApprovedSurvivesCancel(t *testing.T) {
	svc, s, flow := newFlow(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.SignTransferFunc = func(context.Context, wallet.SignRequest) (string, error) {
		cancel()
		return "sig1", nil
	}
	svc.ExecuteTransferFunc = func(ctx context.Context, _ wallet.Execution) (decimal.Decimal, error) {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, err
		}
		return dec("1.95"), nil
	}

	var out bytes.Buffer
	_, err := New(strings.NewReader("y\n"), &out).Transfer(ctx, flow, "0xB", dec("100"))
	require.NoError(t, err)
	assert.True(t, s.Handle().Balance().Equal(dec("1.95")))
}

func TestConsole_TransferDeclined(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "maybe\n", ""} {
		svc, s, flow := newFlow(t)
		c := New(strings.NewReader(answer), &bytes.Buffer{})

		_, err := c.Transfer(context.Background(), flow, "0xB", dec("100"))

		assert.ErrorIs(t, err, ErrDeclined, "answer %q", answer)
		assert.Equal(t, transfer.Idle, flow.State())
		assert.Equal(t, 0, svc.CallCount(mock.OpSignTransfer), "nothing is signed without approval")
		assert.True(t, s.Handle().Balance().Equal(dec("2")))
	}
}

func TestConsole_TransferRejected(t *testing.T) {
	svc, _, flow := newFlow(t)
	svc.PrepareTransferFunc = func(context.Context, wallet.QuoteRequest) (*wallet.Quote, error) {
		return nil, &wallet.ServiceError{StatusCode: 400, Reason: "insufficient funds"}
	}
	var out bytes.Buffer

	_, err := New(strings.NewReader("y\n"), &out).Transfer(context.Background(), flow, "0xB", dec("100"))

	assert.EqualError(t, err, "insufficient funds")
	assert.NotContains(t, out.String(), "Approve transfer?")
}

func TestConsole_AskWithoutNewline(t *testing.T) {
	c := New(strings.NewReader("yes"), &bytes.Buffer{})
	ok, err := c.Confirm("Go?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRenderTransactions(t *testing.T) {
	h := wallet.NewHandle("0xAAAA", dec("1"), nil)
	v, err := wallet.BuildView(h, []wallet.TransactionRecord{
		{FromAddress: "0xAAAA", ToAddress: "0xBBBB", Amount: dec("0.5"), Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}, wallet.ViewOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	RenderTransactions(&out, v)
	assert.Contains(t, out.String(), "2024-05-01 12:00:00")
	assert.Contains(t, out.String(), "Sent")
	assert.Contains(t, out.String(), "To: 0xBBBB")
	assert.Contains(t, out.String(), "Total sent: 0.500000 ETH")

	out.Reset()
	empty, err := wallet.BuildView(h, nil, wallet.ViewOptions{})
	require.NoError(t, err)
	RenderTransactions(&out, empty)
	assert.Equal(t, "No transactions yet\n", out.String())

	out.Reset()
	RenderWallet(&out, empty)
	assert.Contains(t, out.String(), "view-only")
}
