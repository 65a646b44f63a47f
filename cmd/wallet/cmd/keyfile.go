package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/credential"
	"github.com/AlexZinkM/wallet-approval/internal/crypto"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/spf13/cobra"
)

var keyfileCmd = &cobra.Command{
	Use:   "keyfile",
	Short: "Manage encrypted .cwt keyfiles",
}

var keyfileImportCmd = &cobra.Command{
	Use:   "import <address> <file.cwt>",
	Short: "Encrypt a private key into a new keyfile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := addressArg(args)
		if err != nil {
			return err
		}

		read := credential.HiddenInput(os.Stdin, os.Stderr)
		raw, err := read("Private key: ")
		if err != nil {
			return err
		}
		defer clear(raw)
		key := bytes.TrimSpace(raw)
		if len(key) == 0 {
			return errors.New("private key cannot be empty")
		}

		if err := saveKeyFile(args[1], address, key, os.Stdin); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Keyfile written to %s\n", args[1])
		return nil
	},
}

var keyfilePasswdCmd = &cobra.Command{
	Use:   "passwd <file.cwt>",
	Short: "Change the keyfile password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		read := credential.HiddenInput(os.Stdin, os.Stderr)

		oldPassword, err := read("Current password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)

		newPassword, err := credential.ReadPassword(read, "New password: ")
		if err != nil {
			return err
		}
		defer clear(newPassword)

		if err := crypto.ChangePassword(args[0], oldPassword, newPassword, crypto.Options{}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
		return nil
	},
}

// saveKeyFile asks for a new password and writes key for address to path.
func saveKeyFile(path, address string, key []byte, in *os.File) error {
	if !strings.HasSuffix(path, crypto.Extension) {
		return fmt.Errorf("keyfile must have %s extension", crypto.Extension)
	}

	password, err := credential.ReadPassword(credential.HiddenInput(in, os.Stderr), "Keyfile password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	qr, err := wallet.AddressQR(common.DisplayAddress(address))
	if err != nil {
		return err
	}

	data := &model.KeyData{
		PrivateKey: append([]byte(nil), key...),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	defer clear(data.PrivateKey)

	return crypto.EncryptKeyFile(path, address, data, password, crypto.Options{QR: qr})
}

func init() {
	keyfileCmd.AddCommand(keyfileImportCmd, keyfilePasswdCmd)
	rootCmd.AddCommand(keyfileCmd)
}
