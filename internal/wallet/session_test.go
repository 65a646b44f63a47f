package wallet_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlexZinkM/wallet-approval/internal/wallet"
	"github.com/AlexZinkM/wallet-approval/internal/wallet/mock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPrice struct {
	price decimal.Decimal
	err   error
}

func (p fixedPrice) ETHPriceUSD(context.Context) (decimal.Decimal, error) {
	return p.price, p.err
}

func TestSession_Create(t *testing.T) {
	svc := &mock.Service{}
	s := wallet.NewSession(svc, nil)

	h, err := s.Create(context.Background())
	require.NoError(t, err)

	assert.Same(t, h, s.Handle())
	assert.Equal(t, "0xNEW", h.Address())
	assert.True(t, h.Balance().Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "0xkey", h.PrivateKey())
}

func TestSession_Access_UsesCredentialProvider(t *testing.T) {
	svc := &mock.Service{
		GetBalanceFunc: func(_ context.Context, address string) (decimal.Decimal, error) {
			assert.Equal(t, "0xA", address)
			return dec("2"), nil
		},
	}
	var asked string
	creds := wallet.CredentialFunc(func(_ context.Context, address string) ([]byte, error) {
		asked = address
		return []byte("0xsecret"), nil
	})

	h, err := wallet.NewSession(svc, creds).Access(context.Background(), "0xA")
	require.NoError(t, err)

	assert.Equal(t, "0xA", asked)
	assert.True(t, h.HasPrivateKey())
	assert.Equal(t, "0xsecret", h.PrivateKey())
	assert.True(t, h.Balance().Equal(dec("2")))
}

func TestSession_Access_DeclinedCredentialIsViewOnly(t *testing.T) {
	creds := wallet.CredentialFunc(func(context.Context, string) ([]byte, error) {
		return nil, fmt.Errorf("prompt closed: %w", wallet.ErrNoCredential)
	})

	h, err := wallet.NewSession(&mock.Service{}, creds).Access(context.Background(), "0xA")
	require.NoError(t, err)
	assert.False(t, h.HasPrivateKey())
}

func TestSession_Access_NotFound(t *testing.T) {
	svc := &mock.Service{
		GetBalanceFunc: func(context.Context, string) (decimal.Decimal, error) {
			return decimal.Zero, fmt.Errorf("lookup 0xZ: %w", wallet.ErrNotFound)
		},
	}
	calledCreds := false
	creds := wallet.CredentialFunc(func(context.Context, string) ([]byte, error) {
		calledCreds = true
		return nil, nil
	})

	s := wallet.NewSession(svc, creds)
	_, err := s.Access(context.Background(), "0xZ")

	assert.ErrorIs(t, err, wallet.ErrNotFound)
	assert.False(t, calledCreds, "no key prompt for an unknown wallet")
	assert.Nil(t, s.Handle())
}

func TestSession_Access_ProviderFailure(t *testing.T) {
	boom := errors.New("tty gone")
	creds := wallet.CredentialFunc(func(context.Context, string) ([]byte, error) { return nil, boom })

	_, err := wallet.NewSession(&mock.Service{}, creds).Access(context.Background(), "0xA")
	assert.ErrorIs(t, err, boom)
}

func TestSession_RefreshAndClose(t *testing.T) {
	balance := dec("5")
	svc := &mock.Service{
		GetBalanceFunc: func(context.Context, string) (decimal.Decimal, error) { return balance, nil },
	}
	s := wallet.NewSession(svc, wallet.CredentialFunc(func(context.Context, string) ([]byte, error) {
		return []byte("k"), nil
	}))

	_, err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, wallet.ErrNoWallet)

	h, err := s.Access(context.Background(), "0xA")
	require.NoError(t, err)

	balance = dec("4.5")
	got, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("4.5")))
	assert.True(t, h.Balance().Equal(dec("4.5")))

	s.Close()
	assert.Nil(t, s.Handle())
	assert.False(t, h.HasPrivateKey(), "closing the session wipes the key")
}

func TestSession_View(t *testing.T) {
	svc := &mock.Service{
		GetBalanceFunc: func(context.Context, string) (decimal.Decimal, error) { return dec("2"), nil },
		GetTransactionsFunc: func(_ context.Context, address string) ([]wallet.TransactionRecord, error) {
			return sampleRecords(), nil
		},
	}

	s := wallet.NewSession(svc, nil, wallet.WithPriceSource(fixedPrice{price: dec("2000")}))
	_, err := s.Access(context.Background(), "0xAAAA")
	require.NoError(t, err)

	v, err := s.View(context.Background(), wallet.ViewOptions{})
	require.NoError(t, err)
	assert.Len(t, v.Transactions, 3)
	assert.Equal(t, "$4000.00", v.BalanceUSD)
	assert.False(t, v.HasPrivateKey)
}

func TestSession_View_PriceFeedFailureIsNotFatal(t *testing.T) {
	s := wallet.NewSession(&mock.Service{}, nil, wallet.WithPriceSource(fixedPrice{err: errors.New("rate limited")}))
	_, err := s.Access(context.Background(), "0xA")
	require.NoError(t, err)

	v, err := s.View(context.Background(), wallet.ViewOptions{})
	require.NoError(t, err)
	assert.Empty(t, v.BalanceUSD)
}
