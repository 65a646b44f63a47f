// Package credential provides the ways a wallet's private key reaches a session:
// a fixed value, a hidden terminal prompt or an encrypted .cwt keyfile.
package credential

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/wallet-approval/internal/common"
	"github.com/AlexZinkM/wallet-approval/internal/crypto"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"golang.org/x/term"
)

// SecretReader shows prompt and reads one line of input without echo.
type SecretReader func(prompt string) ([]byte, error)

// HiddenInput reads secrets from a terminal. It fails when in is not a terminal.
func HiddenInput(in *os.File, out io.Writer) SecretReader {
	return func(prompt string) ([]byte, error) {
		fd := int(in.Fd())
		if !term.IsTerminal(fd) {
			return nil, errors.New("stdin is not a terminal: run the app interactively to enter secrets")
		}
		fmt.Fprint(out, prompt)
		defer fmt.Fprintln(out)

		raw, err := term.ReadPassword(fd)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return raw, nil
	}
}

// Static serves keys from memory, keyed by address (case-insensitive).
type Static map[string]string

// PrivateKey implements wallet.CredentialProvider.
func (s Static) PrivateKey(_ context.Context, address string) ([]byte, error) {
	for addr, key := range s {
		if common.SameAddress(addr, address) && key != "" {
			return []byte(key), nil
		}
	}
	return nil, wallet.ErrNoCredential
}

// Terminal asks the user to type the private key.
// Submitting an empty line leaves the wallet view-only.
type Terminal struct {
	Read SecretReader
}

// PrivateKey implements wallet.CredentialProvider.
func (t Terminal) PrivateKey(_ context.Context, address string) ([]byte, error) {
	raw, err := t.Read(fmt.Sprintf("Private key for %s (empty for view-only): ", address))
	if err != nil {
		return nil, err
	}
	key := bytes.TrimSpace(raw)
	if len(key) == 0 {
		clear(raw)
		return nil, wallet.ErrNoCredential
	}
	out := append([]byte(nil), key...)
	clear(raw)
	return out, nil
}

// KeyFile unlocks an encrypted .cwt keyfile with a password read from Read.
type KeyFile struct {
	Path string
	Read SecretReader
}

// PrivateKey implements wallet.CredentialProvider.
// The keyfile must belong to address; otherwise no credential is supplied.
func (k KeyFile) PrivateKey(_ context.Context, address string) ([]byte, error) {
	fileAddress, err := crypto.ReadKeyFileAddress(k.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile: %w", err)
	}
	if !common.SameAddress(fileAddress, address) {
		return nil, fmt.Errorf("keyfile holds %s, not %s: %w", fileAddress, address, wallet.ErrNoCredential)
	}

	password, err := k.Read(fmt.Sprintf("Keyfile password for %s: ", address))
	if err != nil {
		return nil, err
	}
	defer clear(password)
	if len(password) == 0 {
		return nil, wallet.ErrNoCredential
	}

	_, keyData, err := crypto.DecryptKeyFile(k.Path, password)
	if err != nil {
		return nil, err
	}
	return keyData.PrivateKey, nil
}

// Chain asks each provider in turn and returns the first key supplied.
type Chain []wallet.CredentialProvider

// PrivateKey implements wallet.CredentialProvider.
func (c Chain) PrivateKey(ctx context.Context, address string) ([]byte, error) {
	for _, p := range c {
		key, err := p.PrivateKey(ctx, address)
		if errors.Is(err, wallet.ErrNoCredential) {
			continue
		}
		return key, err
	}
	return nil, wallet.ErrNoCredential
}

// ReadPassword reads a password twice through read and checks both entries match.
func ReadPassword(read SecretReader, prompt string) ([]byte, error) {
	first, err := read(prompt)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	second, err := read("Repeat " + strings.ToLower(prompt[:1]) + prompt[1:])
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)
	if !bytes.Equal(first, second) {
		clear(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}
