package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/console"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func addressArg(args []string) (string, error) {
	address := strings.TrimSpace(args[0])
	if !common.IsValidAddress(address) {
		return "", fmt.Errorf("invalid wallet address %q", address)
	}
	return address, nil
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show wallet balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := addressArg(args)
		if err != nil {
			return err
		}

		s := newSession(false)
		defer s.Close()
		if _, err := s.Access(cmd.Context(), address); err != nil {
			if errors.Is(err, wallet.ErrNotFound) {
				return fmt.Errorf("wallet %s not found", address)
			}
			return err
		}

		v, err := s.View(cmd.Context(), wallet.ViewOptions{})
		if err != nil {
			return err
		}
		console.RenderWallet(cmd.OutOrStdout(), v)
		return nil
	},
}

var historyFlags struct {
	direction string
	from, to  string
	min, max  string
}

var historyCmd = &cobra.Command{
	Use:   "history <address>",
	Short: "List wallet transactions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := addressArg(args)
		if err != nil {
			return err
		}
		filter, err := historyFilter()
		if err != nil {
			return err
		}

		s := newSession(false)
		defer s.Close()
		if _, err := s.Access(cmd.Context(), address); err != nil {
			return err
		}

		v, err := s.View(cmd.Context(), wallet.ViewOptions{Filter: filter})
		if err != nil {
			return err
		}
		console.RenderTransactions(cmd.OutOrStdout(), v)
		return nil
	},
}

func historyFilter() (*wallet.Filter, error) {
	var f wallet.Filter
	const dateLayout = "2006-01-02"

	if historyFlags.direction != "" {
		d := wallet.Direction(strings.ToLower(historyFlags.direction))
		f.Direction = &d
	}
	if historyFlags.from != "" {
		t, err := time.Parse(dateLayout, historyFlags.from)
		if err != nil {
			return nil, fmt.Errorf("invalid --from: use YYYY-MM-DD")
		}
		f.From = &t
	}
	if historyFlags.to != "" {
		t, err := time.Parse(dateLayout, historyFlags.to)
		if err != nil {
			return nil, fmt.Errorf("invalid --to: use YYYY-MM-DD")
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}
	if historyFlags.min != "" {
		d, err := decimal.NewFromString(historyFlags.min)
		if err != nil {
			return nil, fmt.Errorf("invalid --min: %w", err)
		}
		f.MinAmount = &d
	}
	if historyFlags.max != "" {
		d, err := decimal.NewFromString(historyFlags.max)
		if err != nil {
			return nil, fmt.Errorf("invalid --max: %w", err)
		}
		f.MaxAmount = &d
	}
	return &f, f.Validate()
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.direction, "direction", "", "sent or received")
	historyCmd.Flags().StringVar(&historyFlags.from, "from", "", "start date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyFlags.to, "to", "", "end date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyFlags.min, "min", "", "minimum amount in ETH")
	historyCmd.Flags().StringVar(&historyFlags.max, "max", "", "maximum amount in ETH")

	rootCmd.AddCommand(balanceCmd, historyCmd)
}
