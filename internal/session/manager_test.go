package session

import (
	"context"
	"testing"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"
	"github.com/AlexZinkM/wallet-approval/internal/wallet/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gauge struct {
	metrics.NoOpCollector
	active int
}

func (g *gauge) SetActiveSessions(n int) { g.active = n }

func newManager(now *time.Time, g *gauge) *Manager {
	return NewManager(Config{
		Service: &mock.Service{},
		TTL:     time.Minute,
		Metrics: g,
		Now:     func() time.Time { return *now },
	})
}

func TestManager_CreateGetDelete(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := &gauge{}
	m := newManager(&now, g)

	e := m.Create(nil)
	require.NotEmpty(t, e.ID)
	assert.Equal(t, 1, g.active)
	require.NotNil(t, e.Flow)

	got, err := m.Get(e.ID)
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = m.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	m.Delete(e.ID)
	_, err = m.Get(e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, g.active)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	now := time.Now()
	m := newManager(&now, &gauge{})

	a, b := m.Create(nil), m.Create(nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Wallet, b.Wallet)
	assert.NotSame(t, a.Flow, b.Flow)
}

func TestManager_ExpiryAndSweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := &gauge{}
	m := newManager(&now, g)

	creds := wallet.CredentialFunc(func(context.Context, string) ([]byte, error) { return []byte("k"), nil })
	stale := m.Create(creds)
	h, err := stale.Wallet.Access(context.Background(), "0xA")
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	fresh := m.Create(nil)

	now = now.Add(30 * time.Second)
	_, err = m.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound, "idle longer than the TTL")

	_, err = m.Get(fresh.ID)
	require.NoError(t, err, "Get refreshes the idle timer")

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, g.active)
	assert.False(t, h.HasPrivateKey(), "expired sessions have their key wiped")
}

func TestManager_RunClosesOnShutdown(t *testing.T) {
	now := time.Now()
	g := &gauge{}
	m := newManager(&now, g)
	m.Create(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, m.Len())
}
