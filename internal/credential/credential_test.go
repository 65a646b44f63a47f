package credential

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/wallet-approval/internal/crypto"
	"github.com/AlexZinkM/wallet-approval/internal/model"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answers replays inputs in order and records the prompts it was shown.
type answers struct {
	inputs  []string
	prompts []string
}

func (a *answers) read(prompt string) ([]byte, error) {
	a.prompts = append(a.prompts, prompt)
	if len(a.inputs) == 0 {
		return nil, errors.New("no more input")
	}
	in := a.inputs[0]
	a.inputs = a.inputs[1:]
	return []byte(in), nil
}

func TestStatic(t *testing.T) {
	s := Static{"0xAbC": "k1"}

	key, err := s.PrivateKey(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, []byte("k1"), key)

	_, err = s.PrivateKey(context.Background(), "0xdef")
	assert.ErrorIs(t, err, wallet.ErrNoCredential)
}

func TestTerminal(t *testing.T) {
	a := &answers{inputs: []string{"  0xsecret \n", ""}}
	term := Terminal{Read: a.read}

	key, err := term.PrivateKey(context.Background(), "0xA")
	require.NoError(t, err)
	assert.Equal(t, []byte("0xsecret"), key)
	assert.Contains(t, a.prompts[0], "0xA")

	_, err = term.PrivateKey(context.Background(), "0xA")
	assert.ErrorIs(t, err, wallet.ErrNoCredential)
}

func TestKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.cwt")
	require.NoError(t, crypto.EncryptKeyFile(path, "0xAAAA", &model.KeyData{PrivateKey: []byte("0xkey")}, []byte("pw"),
		crypto.Options{KDF: model.KDFParams{N: 1 << 10, R: 8, P: 1}}))

	t.Run("unlocks", func(t *testing.T) {
		a := &answers{inputs: []string{"pw"}}
		key, err := KeyFile{Path: path, Read: a.read}.PrivateKey(context.Background(), "0xaaaa")
		require.NoError(t, err)
		assert.Equal(t, []byte("0xkey"), key)
	})

	t.Run("wrong password", func(t *testing.T) {
		a := &answers{inputs: []string{"bad"}}
		_, err := KeyFile{Path: path, Read: a.read}.PrivateKey(context.Background(), "0xAAAA")
		assert.ErrorIs(t, err, crypto.ErrInvalidPassword)
	})

	t.Run("other wallet", func(t *testing.T) {
		a := &answers{}
		_, err := KeyFile{Path: path, Read: a.read}.PrivateKey(context.Background(), "0xBBBB")
		assert.ErrorIs(t, err, wallet.ErrNoCredential)
		assert.Empty(t, a.prompts, "no password prompt for a foreign keyfile")
	})

	t.Run("empty password", func(t *testing.T) {
		a := &answers{inputs: []string{""}}
		_, err := KeyFile{Path: path, Read: a.read}.PrivateKey(context.Background(), "0xAAAA")
		assert.ErrorIs(t, err, wallet.ErrNoCredential)
	})
}

func TestChain(t *testing.T) {
	a := &answers{inputs: []string{"typed"}}
	c := Chain{Static{"0xB": "other"}, Terminal{Read: a.read}}

	key, err := c.PrivateKey(context.Background(), "0xA")
	require.NoError(t, err)
	assert.Equal(t, []byte("typed"), key)

	_, err = Chain{}.PrivateKey(context.Background(), "0xA")
	assert.ErrorIs(t, err, wallet.ErrNoCredential)
}

func TestReadPassword(t *testing.T) {
	a := &answers{inputs: []string{"pw", "pw"}}
	pw, err := ReadPassword(a.read, "New password: ")
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), pw)
	assert.Equal(t, []string{"New password: ", "Repeat new password: "}, a.prompts)

	_, err = ReadPassword((&answers{inputs: []string{"a", "b"}}).read, "Password: ")
	assert.EqualError(t, err, "passwords do not match")

	_, err = ReadPassword((&answers{inputs: []string{""}}).read, "Password: ")
	assert.Error(t, err)
}
