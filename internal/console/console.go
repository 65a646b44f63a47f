// Package console is the terminal front: it renders wallets and asks the user to approve transfers.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/transfer"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
)

// ErrDeclined is returned when the user does not approve a transfer.
var ErrDeclined = errors.New("transfer declined")

const timeLayout = "2006-01-02 15:04:05"

// Console reads answers from in and writes to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a console.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Ask prints prompt and returns the trimmed answer line.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (c *Console) Confirm(prompt string) (bool, error) {
	answer, err := c.Ask(prompt + " [y/N]: ")
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Transfer runs the approval flow in the terminal: quote, show the message, ask, then sign and execute.
// A declined transfer is cancelled and ErrDeclined returned.
func (c *Console) Transfer(ctx context.Context, flow *transfer.Flow, to string, amountUSD decimal.Decimal) (*transfer.Receipt, error) {
	pending, err := flow.Prepare(ctx, "", to, amountUSD)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(c.out, "---------------------------------------------------")
	fmt.Fprintln(c.out, pending.Message)
	fmt.Fprintf(c.out, "From:   %s\n", common.DisplayAddress(pending.FromAddress))
	fmt.Fprintf(c.out, "To:     %s\n", common.DisplayAddress(pending.ToAddress))
	fmt.Fprintf(c.out, "Amount: %s (%s)\n",
		common.FormatETH(pending.AmountETH, common.AmountDecimals),
		common.FormatUSD(pending.AmountUSD))
	fmt.Fprintln(c.out, "---------------------------------------------------")

	ok, err := c.Confirm("Approve transfer?")
	if err != nil || !ok {
		if cancelErr := flow.Cancel(); cancelErr != nil {
			return nil, cancelErr
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrDeclined
	}

	// Once approved, sign and execute run to completion.
	receipt, err := flow.Confirm(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(c.out, "Transfer completed successfully")
	fmt.Fprintf(c.out, "Signature:   %s\n", receipt.Signature)
	fmt.Fprintf(c.out, "New balance: %s\n", common.FormatETH(receipt.NewBalance, common.BalanceDecimals))
	return receipt, nil
}

// RenderWallet prints the wallet summary.
func RenderWallet(out io.Writer, v *wallet.View) {
	fmt.Fprintf(out, "Address:     %s\n", v.Address)
	if v.BalanceUSD != "" {
		fmt.Fprintf(out, "Balance:     %s (%s)\n", v.BalanceText, v.BalanceUSD)
	} else {
		fmt.Fprintf(out, "Balance:     %s\n", v.BalanceText)
	}
	fmt.Fprintf(out, "Private key: %s\n", v.PrivateKey)
	if !v.HasPrivateKey {
		fmt.Fprintln(out, "(view-only: transfers need the private key)")
	}
}

// RenderTransactions prints the transaction table, newest first, with totals.
func RenderTransactions(out io.Writer, v *wallet.View) {
	if len(v.Transactions) == 0 {
		fmt.Fprintln(out, v.EmptyMessage)
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tAMOUNT\tCOUNTERPARTY")
	for _, e := range v.Transactions {
		ts := "-"
		if !e.Timestamp.IsZero() {
			ts = e.Timestamp.UTC().Format(timeLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s: %s\n", ts, e.Label, e.AmountText, e.CounterpartyLabel, e.Counterparty)
	}
	tw.Flush()

	fmt.Fprintf(out, "Total sent: %s, total received: %s\n",
		common.FormatETH(v.TotalSent, common.AmountDecimals),
		common.FormatETH(v.TotalReceived, common.AmountDecimals))
}
