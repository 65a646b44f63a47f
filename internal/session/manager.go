// Package session keeps the per-user wallet sessions of the HTTP front.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/transfer"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found or expired")

// Entry is one user's wallet session and its transfer flow.
type Entry struct {
	ID      string
	Wallet  *wallet.Session
	Flow    *transfer.Flow
	Created time.Time

	lastSeen time.Time
}

// Config configures a Manager.
type Config struct {
	Service  wallet.Service
	Prices   wallet.PriceSource
	TTL      time.Duration
	Cooldown time.Duration
	Metrics  metrics.Collector
	Logger   *logging.Logger
	Now      func() time.Time
}

// Manager creates, looks up and expires sessions.
type Manager struct {
	cfg    Config
	logger *logging.Logger

	mu       sync.Mutex
	sessions map[string]*Entry
}

// NewManager creates an empty manager.
func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	cfg.Metrics = metrics.OrNoOp(cfg.Metrics)
	return &Manager{
		cfg:      cfg,
		logger:   logging.OrGlobal(cfg.Logger).Named("sessions"),
		sessions: make(map[string]*Entry),
	}
}

// Create starts a session. creds supplies the private key when a wallet is accessed
// and may be nil for view-only sessions.
func (m *Manager) Create(creds wallet.CredentialProvider) *Entry {
	opts := []wallet.SessionOption{wallet.WithLogger(m.cfg.Logger)}
	if m.cfg.Prices != nil {
		opts = append(opts, wallet.WithPriceSource(m.cfg.Prices))
	}
	ws := wallet.NewSession(m.cfg.Service, creds, opts...)

	now := m.cfg.Now()
	e := &Entry{
		ID:     uuid.NewString(),
		Wallet: ws,
		Flow: transfer.NewFlow(ws, transfer.Options{
			Cooldown: m.cfg.Cooldown,
			Metrics:  m.cfg.Metrics,
			Logger:   m.cfg.Logger,
			Now:      m.cfg.Now,
		}),
		Created:  now,
		lastSeen: now,
	}

	m.mu.Lock()
	m.sessions[e.ID] = e
	n := len(m.sessions)
	m.mu.Unlock()

	m.cfg.Metrics.SetActiveSessions(n)
	m.logger.Debug("session created", zap.String("session_id", e.ID))
	return e
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(id string) (*Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	now := m.cfg.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok || now.Sub(e.lastSeen) > m.cfg.TTL {
		return nil, ErrNotFound
	}
	e.lastSeen = now
	return e, nil
}

// Delete ends a session and wipes its key. Unknown ids are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if ok {
		e.Wallet.Close()
		m.cfg.Metrics.SetActiveSessions(n)
		m.logger.Debug("session closed", zap.String("session_id", id))
	}
}

// Len returns the number of sessions held, expired or not.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many it removed.
func (m *Manager) Sweep() int {
	now := m.cfg.Now()

	m.mu.Lock()
	var expired []*Entry
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.cfg.TTL {
			expired = append(expired, e)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, e := range expired {
		e.Wallet.Close()
	}
	if len(expired) > 0 {
		m.cfg.Metrics.SetActiveSessions(n)
		m.logger.Info("expired sessions removed", zap.Int("count", len(expired)), zap.Int("active", n))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.CloseAll()
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// CloseAll ends every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Entry)
	m.mu.Unlock()

	for _, e := range all {
		e.Wallet.Close()
	}
	m.cfg.Metrics.SetActiveSessions(0)
}
