// Package transfer drives a user-approved funds transfer against WalletService:
// prepare, explicit approval, sign, execute.
package transfer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State is the position of a Flow in the approval workflow.
type State int

const (
	Idle State = iota
	Preparing
	AwaitingApproval
	Signing
	Executing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case AwaitingApproval:
		return "awaiting_approval"
	case Signing:
		return "signing"
	case Executing:
		return "executing"
	default:
		return "unknown"
	}
}

func (s State) inFlight() bool {
	return s == Preparing || s == Signing || s == Executing
}

// PendingTransfer is a quoted transfer awaiting approval.
type PendingTransfer struct {
	FromAddress string          `json:"fromAddress"`
	ToAddress   string          `json:"toAddress"`
	AmountETH   decimal.Decimal `json:"amountEth"`
	AmountUSD   decimal.Decimal `json:"amountUsd"`
	Message     string          `json:"message"`
	PreparedAt  time.Time       `json:"preparedAt"`
}

// Receipt describes a completed transfer.
type Receipt struct {
	FromAddress string          `json:"fromAddress"`
	ToAddress   string          `json:"toAddress"`
	AmountETH   decimal.Decimal `json:"amountEth"`
	Message     string          `json:"message"`
	Signature   string          `json:"signature"`
	NewBalance  decimal.Decimal `json:"newBalance"`
	CompletedAt time.Time       `json:"completedAt"`
}

// Options configures a Flow. The zero value is usable.
type Options struct {
	// Cooldown is the minimum gap between two successful transfers.
	Cooldown time.Duration
	Metrics  metrics.Collector
	Logger   *logging.Logger
	Now      func() time.Time
}

// Flow coordinates transfers for the wallet active in one session.
// It is safe for concurrent use; overlapping operations fail with ErrFlowBusy.
type Flow struct {
	session  *wallet.Session
	cooldown time.Duration
	metrics  metrics.Collector
	logger   *logging.Logger
	now      func() time.Time

	mu           sync.Mutex
	state        State
	pending      *PendingTransfer
	handle       *wallet.Handle
	lastTransfer time.Time
}

// NewFlow creates an idle flow bound to session.
func NewFlow(session *wallet.Session, opts Options) *Flow {
	f := &Flow{
		session:  session,
		cooldown: opts.Cooldown,
		metrics:  metrics.OrNoOp(opts.Metrics),
		logger:   logging.OrGlobal(opts.Logger).Named("transfer"),
		now:      opts.Now,
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Pending returns a copy of the transfer awaiting approval, or nil.
func (f *Flow) Pending() *PendingTransfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return nil
	}
	p := *f.pending
	return &p
}

// reset drops pending state. Caller holds f.mu.
func (f *Flow) reset() {
	f.state = Idle
	f.pending = nil
	f.handle = nil
}

// Prepare asks WalletService to quote a transfer of amountUSD from the active wallet to to.
// An empty from means the active wallet. On success the flow awaits approval and the
// returned transfer's Message is the text the user must approve. A prepare while another
// transfer awaits approval replaces it.
func (f *Flow) Prepare(ctx context.Context, from, to string, amountUSD decimal.Decimal) (*PendingTransfer, error) {
	f.mu.Lock()
	if f.state.inFlight() {
		f.mu.Unlock()
		return nil, ErrFlowBusy
	}
	f.reset()

	h := f.session.Handle()
	if h == nil || !h.HasPrivateKey() || (from != "" && !common.SameAddress(from, h.Address())) {
		f.mu.Unlock()
		f.metrics.RecordTransfer(metrics.PhasePrepare, metrics.OutcomeRejected)
		return nil, ErrAuthenticationRequired
	}

	to = strings.TrimSpace(to)
	if to == "" {
		f.mu.Unlock()
		return nil, f.rejected(nil, "recipient address is required")
	}
	if !amountUSD.IsPositive() {
		f.mu.Unlock()
		return nil, f.rejected(nil, "amount must be greater than zero")
	}
	if f.cooldown > 0 && !f.lastTransfer.IsZero() {
		if remaining := f.cooldown - f.now().Sub(f.lastTransfer); remaining > 0 {
			f.mu.Unlock()
			return nil, &CooldownError{Remaining: remaining}
		}
	}

	f.state = Preparing
	f.mu.Unlock()

	quote, err := f.session.Service().PrepareTransfer(ctx, wallet.QuoteRequest{
		FromAddress: h.Address(),
		ToAddress:   to,
		AmountUSD:   amountUSD,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil && quote == nil {
		err = errors.New("wallet service returned an empty quote")
	}
	if err != nil {
		f.reset()
		return nil, f.rejected(err, wallet.Reason(err))
	}

	p := &PendingTransfer{
		FromAddress: h.Address(),
		ToAddress:   to,
		AmountETH:   quote.AmountETH,
		AmountUSD:   amountUSD,
		Message:     quote.Message,
		PreparedAt:  f.now(),
	}
	f.pending = p
	f.handle = h
	f.state = AwaitingApproval

	f.metrics.RecordTransfer(metrics.PhasePrepare, metrics.OutcomeSuccess)
	f.logger.Info("transfer prepared",
		zap.String("from", p.FromAddress),
		zap.String("to", p.ToAddress),
		zap.String("amount_eth", p.AmountETH.String()),
		zap.String("amount_usd", p.AmountUSD.String()),
	)

	out := *p
	return &out, nil
}

func (f *Flow) rejected(err error, reason string) error {
	f.metrics.RecordTransfer(metrics.PhasePrepare, metrics.OutcomeRejected)
	f.logger.Warn("transfer rejected", zap.String("reason", reason))
	return &TransferRejectedError{Reason: reason, Err: err}
}

// Confirm approves the pending transfer: it is signed, then executed.
// Any failure discards the pending transfer; nothing is retried.
func (f *Flow) Confirm(ctx context.Context) (*Receipt, error) {
	f.mu.Lock()
	if f.state.inFlight() {
		f.mu.Unlock()
		return nil, ErrFlowBusy
	}
	if f.state != AwaitingApproval || f.pending == nil {
		f.mu.Unlock()
		return nil, ErrInvalidState
	}

	p, h := *f.pending, f.handle
	key := h.PrivateKey()
	if key == "" {
		f.reset()
		f.mu.Unlock()
		f.metrics.RecordTransfer(metrics.PhaseSign, metrics.OutcomeFailed)
		return nil, ErrAuthenticationRequired
	}
	f.state = Signing
	f.mu.Unlock()

	svc := f.session.Service()

	signature, err := svc.SignTransfer(ctx, wallet.SignRequest{
		Address:    p.FromAddress,
		PrivateKey: key,
		Message:    p.Message,
	})
	if err == nil && signature == "" {
		err = errors.New("wallet service returned an empty signature")
	}
	if err != nil {
		return nil, f.failed(metrics.PhaseSign, err)
	}

	f.mu.Lock()
	f.state = Executing
	f.mu.Unlock()

	newBalance, err := svc.ExecuteTransfer(ctx, wallet.Execution{
		FromAddress: p.FromAddress,
		ToAddress:   p.ToAddress,
		AmountETH:   p.AmountETH,
		Message:     p.Message,
		Signature:   signature,
	})
	if err != nil {
		return nil, f.failed(metrics.PhaseExecute, err)
	}

	f.mu.Lock()
	h.SetBalance(newBalance)
	f.reset()
	completed := f.now()
	f.lastTransfer = completed
	f.mu.Unlock()

	f.metrics.RecordTransfer(metrics.PhaseExecute, metrics.OutcomeSuccess)
	f.logger.Info("transfer executed",
		zap.String("from", p.FromAddress),
		zap.String("to", p.ToAddress),
		zap.String("amount_eth", p.AmountETH.String()),
		zap.String("signature", logging.Short(signature)),
		zap.String("new_balance", newBalance.String()),
	)

	return &Receipt{
		FromAddress: p.FromAddress,
		ToAddress:   p.ToAddress,
		AmountETH:   p.AmountETH,
		Message:     p.Message,
		Signature:   signature,
		NewBalance:  newBalance,
		CompletedAt: completed,
	}, nil
}

func (f *Flow) failed(phase string, err error) error {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()

	reason := wallet.Reason(err)
	f.metrics.RecordTransfer(phase, metrics.OutcomeFailed)
	f.logger.Warn("transfer failed", zap.String("phase", phase), zap.String("reason", reason))
	return &TransferFailedError{Phase: phase, Reason: reason, Err: err}
}

// Cancel discards any pending transfer and returns to Idle. It never calls WalletService.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.inFlight() {
		return ErrFlowBusy
	}
	if f.pending != nil {
		f.metrics.RecordTransfer(metrics.PhaseCancel, metrics.OutcomeSuccess)
		f.logger.Info("transfer cancelled", zap.String("to", f.pending.ToAddress))
	}
	f.reset()
	return nil
}
