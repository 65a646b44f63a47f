package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

// Operation names used for metrics and logs.
const (
	OpCreateWallet    = "createWallet"
	OpGetBalance      = "getBalance"
	OpGetTransactions = "getTransactions"
	OpPrepareTransfer = "prepareTransfer"
	OpSignTransfer    = "signTransfer"
	OpExecuteTransfer = "executeTransfer"
)

// WalletServiceClient is a client for the WalletService HTTP API.
// It implements wallet.Service.
type WalletServiceClient struct {
	baseURL string
	client  *http.Client
	breaker *Breaker
	metrics metrics.Collector
	logger  *logging.Logger
}

var _ wallet.Service = (*WalletServiceClient)(nil)

// Option configures a WalletServiceClient.
type Option func(*WalletServiceClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *WalletServiceClient) { c.client = hc }
}

// WithBreaker routes every call through b.
func WithBreaker(b *Breaker) Option {
	return func(c *WalletServiceClient) { c.breaker = b }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m metrics.Collector) Option {
	return func(c *WalletServiceClient) { c.metrics = m }
}

// WithLogger sets the client logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *WalletServiceClient) { c.logger = l }
}

// NewWalletServiceClient creates a new WalletService client.
// timeout bounds every request; zero means 10s.
func NewWalletServiceClient(baseURL string, timeout time.Duration, opts ...Option) *WalletServiceClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &WalletServiceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = metrics.OrNoOp(c.metrics)
	c.logger = logging.OrGlobal(c.logger).Named("wallet-service")
	return c
}

// CreateWallet creates a new wallet
func (c *WalletServiceClient) CreateWallet(ctx context.Context) (*wallet.CreatedWallet, error) {
	var resp model.CreateWalletResponse
	if err := c.do(ctx, OpCreateWallet, http.MethodPost, "/api/wallet/create", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Address == "" {
		return nil, errors.New("wallet service returned no address")
	}
	return &wallet.CreatedWallet{
		Address:    resp.Address,
		PrivateKey: resp.PrivateKey,
		Balance:    resp.Balance.Decimal,
	}, nil
}

// GetBalance gets the balance of address
func (c *WalletServiceClient) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	var resp model.BalanceResponse
	err := c.do(ctx, OpGetBalance, http.MethodGet, "/api/wallet/"+url.PathEscape(address)+"/balance", nil, &resp)
	if err != nil {
		return decimal.Zero, notFound(err, address)
	}
	return resp.Balance.Decimal, nil
}

// GetTransactions gets the ledger rows that involve address
func (c *WalletServiceClient) GetTransactions(ctx context.Context, address string) ([]wallet.TransactionRecord, error) {
	var resp model.TransactionsResponse
	err := c.do(ctx, OpGetTransactions, http.MethodGet, "/api/wallet/"+url.PathEscape(address)+"/transactions", nil, &resp)
	if err != nil {
		return nil, notFound(err, address)
	}

	records := make([]wallet.TransactionRecord, 0, len(resp.Transactions))
	for _, tx := range resp.Transactions {
		records = append(records, wallet.TransactionRecord{
			ID:          tx.ID,
			FromAddress: tx.FromAddress,
			ToAddress:   tx.ToAddress,
			Amount:      tx.Amount.Decimal,
			Signature:   tx.Signature,
			Timestamp:   tx.Timestamp.Time,
		})
	}
	return records, nil
}

// PrepareTransfer converts and validates a transfer
func (c *WalletServiceClient) PrepareTransfer(ctx context.Context, req wallet.QuoteRequest) (*wallet.Quote, error) {
	body := model.PrepareRequest{
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		AmountUSD:   model.NewAmount(req.AmountUSD),
	}
	var resp model.PrepareResponse
	if err := c.do(ctx, OpPrepareTransfer, http.MethodPost, "/api/transfer/prepare", body, &resp); err != nil {
		return nil, err
	}
	return &wallet.Quote{
		Message:   resp.Message,
		AmountETH: resp.AmountETH.Decimal,
		AmountUSD: resp.AmountUSD.Decimal,
	}, nil
}

// SignTransfer asks the service to sign message with the wallet key
func (c *WalletServiceClient) SignTransfer(ctx context.Context, req wallet.SignRequest) (string, error) {
	body := model.SignRequest{
		Address:    req.Address,
		PrivateKey: req.PrivateKey,
		Message:    req.Message,
	}
	var resp model.SignResponse
	if err := c.do(ctx, OpSignTransfer, http.MethodPost, "/api/transfer/sign", body, &resp); err != nil {
		return "", err
	}
	return resp.Signature, nil
}

// ExecuteTransfer commits a signed transfer and returns the new sender balance
func (c *WalletServiceClient) ExecuteTransfer(ctx context.Context, req wallet.Execution) (decimal.Decimal, error) {
	body := model.ExecuteRequest{
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		AmountETH:   model.NewAmount(req.AmountETH),
		Message:     req.Message,
		Signature:   req.Signature,
	}
	var resp model.ExecuteResponse
	if err := c.do(ctx, OpExecuteTransfer, http.MethodPost, "/api/transfer/execute", body, &resp); err != nil {
		return decimal.Zero, err
	}
	if resp.Success != nil && !*resp.Success {
		reason := resp.Message
		if reason == "" {
			reason = "transfer was not executed"
		}
		return decimal.Zero, &wallet.ServiceError{StatusCode: http.StatusOK, Reason: reason}
	}
	return resp.NewBalance.Decimal, nil
}

func (c *WalletServiceClient) do(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()

	call := func() error { return c.roundTrip(ctx, method, path, in, out) }
	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}

	duration := time.Since(start)
	c.metrics.RecordServiceCall(op, err == nil, duration)
	if err != nil {
		c.logger.Debug("wallet service call failed",
			zap.String("op", op),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
	return err
}

func (c *WalletServiceClient) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wallet service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp model.ErrorResponse
		_ = json.Unmarshal(data, &errResp)
		return &wallet.ServiceError{StatusCode: resp.StatusCode, Reason: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// notFound maps a 404 answer to wallet.ErrNotFound.
func notFound(err error, address string) error {
	var se *wallet.ServiceError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return fmt.Errorf("wallet %s: %w", address, wallet.ErrNotFound)
	}
	return err
}
