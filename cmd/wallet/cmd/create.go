package cmd

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/wallet-approval/internal/console"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/spf13/cobra"
)

var createSaveTo string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet",
	Long: `Asks WalletService for a new wallet and prints its address and private key.
The key is shown once; use --save to keep it in an encrypted .cwt keyfile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(false)
		defer s.Close()

		h, err := s.Create(cmd.Context())
		if err != nil {
			return err
		}

		v, err := wallet.BuildView(h, nil, wallet.ViewOptions{RevealKey: true})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Wallet created")
		console.RenderWallet(out, v)

		if createSaveTo == "" {
			fmt.Fprintln(out, "Store the private key now: it cannot be recovered.")
			return nil
		}
		if err := saveKeyFile(createSaveTo, h.Address(), []byte(h.PrivateKey()), os.Stdin); err != nil {
			return err
		}
		fmt.Fprintf(out, "Keyfile written to %s\n", createSaveTo)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createSaveTo, "save", "", "write the key to this .cwt keyfile")
	rootCmd.AddCommand(createCmd)
}
