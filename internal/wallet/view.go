package wallet

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/common"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const (
	maskedKey       = "••••••••"
	emptyHistoryMsg = "No transactions yet"
	qrSize          = 256
)

// Direction classifies a transaction relative to the active wallet.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Entry is one rendered transaction row.
type Entry struct {
	ID                int64           `json:"id,omitempty"`
	Direction         Direction       `json:"direction"`
	Label             string          `json:"label"`
	Amount            decimal.Decimal `json:"amount"`
	AmountText        string          `json:"amountText"`
	CounterpartyLabel string          `json:"counterpartyLabel"`
	Counterparty      string          `json:"counterparty"`
	Timestamp         time.Time       `json:"timestamp"`
}

// View is the display model of a wallet, independent of any rendering technology.
type View struct {
	Address       string          `json:"address"`
	Balance       decimal.Decimal `json:"balance"`
	BalanceText   string          `json:"balanceText"`
	BalanceUSD    string          `json:"balanceUsd,omitempty"`
	HasPrivateKey bool            `json:"hasPrivateKey"`
	PrivateKey    string          `json:"privateKey"`
	QR            string          `json:"QR,omitempty"`
	Transactions  []Entry         `json:"transactions"`
	EmptyMessage  string          `json:"emptyMessage,omitempty"`
	TotalSent     decimal.Decimal `json:"totalSent"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
}

// ViewOptions tunes BuildView.
type ViewOptions struct {
	// RevealKey shows the private key instead of a mask (right after wallet creation).
	RevealKey bool
	// WithQR adds a base64 PNG QR code of the address.
	WithQR bool
	// PriceUSD is the ETH/USD rate; zero leaves BalanceUSD empty.
	PriceUSD decimal.Decimal
	// Filter narrows the transaction list. Totals are computed over the filtered list.
	Filter *Filter
}

// Filter represents history filter parameters
type Filter struct {
	Direction *Direction
	From      *time.Time
	To        *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Validate validates Filter parameters.
func (f *Filter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Direction != nil && *f.Direction != DirectionSent && *f.Direction != DirectionReceived {
		return fmt.Errorf("direction must be sent or received")
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return fmt.Errorf("minAmount must be less than or equal to maxAmount")
	}
	return nil
}

func (f *Filter) match(e Entry) bool {
	if f == nil {
		return true
	}
	if f.Direction != nil && *f.Direction != e.Direction {
		return false
	}
	if f.From != nil && e.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Timestamp.After(*f.To) {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

// Classify turns a ledger record into a row relative to owner.
// A record is "sent" when its sender is owner (case-insensitive), otherwise "received".
func Classify(owner string, rec TransactionRecord) Entry {
	e := Entry{
		ID:         rec.ID,
		Amount:     rec.Amount,
		AmountText: common.FormatETH(rec.Amount, common.AmountDecimals),
		Timestamp:  rec.Timestamp,
	}
	if common.SameAddress(rec.FromAddress, owner) {
		e.Direction = DirectionSent
		e.Label = "Sent"
		e.CounterpartyLabel = "To"
		e.Counterparty = common.DisplayAddress(rec.ToAddress)
	} else {
		e.Direction = DirectionReceived
		e.Label = "Received"
		e.CounterpartyLabel = "From"
		e.Counterparty = common.DisplayAddress(rec.FromAddress)
	}
	return e
}

// BuildView maps a wallet handle and its ledger records to a display model.
// Rows are ordered newest first.
func BuildView(h *Handle, records []TransactionRecord, opts ViewOptions) (*View, error) {
	if h == nil {
		return nil, errors.New("no active wallet")
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	balance := h.Balance()
	v := &View{
		Address:       common.DisplayAddress(h.Address()),
		Balance:       balance,
		BalanceText:   common.FormatETH(balance, common.BalanceDecimals),
		HasPrivateKey: h.HasPrivateKey(),
		PrivateKey:    maskedKey,
		Transactions:  make([]Entry, 0, len(records)),
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
	}
	if opts.RevealKey && v.HasPrivateKey {
		v.PrivateKey = h.PrivateKey()
	}
	if opts.PriceUSD.IsPositive() {
		v.BalanceUSD = common.FormatUSD(balance.Mul(opts.PriceUSD))
	}
	if opts.WithQR {
		qr, err := AddressQR(v.Address)
		if err != nil {
			return nil, err
		}
		v.QR = qr
	}

	for _, rec := range records {
		e := Classify(h.Address(), rec)
		if !opts.Filter.match(e) {
			continue
		}
		v.Transactions = append(v.Transactions, e)
		switch e.Direction {
		case DirectionSent:
			v.TotalSent = v.TotalSent.Add(e.Amount)
		case DirectionReceived:
			v.TotalReceived = v.TotalReceived.Add(e.Amount)
		}
	}

	sort.SliceStable(v.Transactions, func(i, j int) bool {
		return v.Transactions[i].Timestamp.After(v.Transactions[j].Timestamp)
	})

	if len(v.Transactions) == 0 {
		v.EmptyMessage = emptyHistoryMsg
	}
	return v, nil
}

// AddressQR generates QR code of address in base64
func AddressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
