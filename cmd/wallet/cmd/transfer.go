package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/console"
	"github.com/AlexZinkM/wallet-approval/internal/transfer"

	"github.com/spf13/cobra"
)

var transferFlags struct {
	from, to, usd string
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Send funds after explicit approval",
	Long: `Quotes the USD amount in ETH, shows the message to be signed and asks for approval.
Nothing is signed or executed unless you answer yes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := strings.TrimSpace(transferFlags.from)
		to := strings.TrimSpace(transferFlags.to)
		// Addresses are opaque here; WalletService rejects unknown ones.
		if from == "" || to == "" {
			return errors.New("--from and --to are required")
		}
		amount, err := common.ParseAmount(transferFlags.usd)
		if err != nil {
			return err
		}

		s := newSession(true)
		defer s.Close()
		if _, err := s.Access(cmd.Context(), from); err != nil {
			return err
		}

		flow := transfer.NewFlow(s, transfer.Options{Cooldown: cfg.TransferCooldown, Logger: logger})
		_, err = console.New(os.Stdin, cmd.OutOrStdout()).Transfer(cmd.Context(), flow, to, amount)
		if errors.Is(err, console.ErrDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), "Transfer cancelled")
			return nil
		}
		return err
	},
}

func init() {
	transferCmd.Flags().StringVar(&transferFlags.from, "from", "", "sender address")
	transferCmd.Flags().StringVar(&transferFlags.to, "to", "", "recipient address")
	transferCmd.Flags().StringVar(&transferFlags.usd, "usd", "", "amount in USD")
	_ = transferCmd.MarkFlagRequired("from")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("usd")

	rootCmd.AddCommand(transferCmd)
}
