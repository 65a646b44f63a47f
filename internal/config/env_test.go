package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "http://localhost:5000", c.WalletAPIURL)
	assert.Equal(t, 10*time.Second, c.WalletAPITimeout)
	assert.Equal(t, uint32(5), c.BreakerMaxFailures)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Zero(t, c.TransferCooldown)
	assert.False(t, c.PriceFeedEnabled)
	assert.Empty(t, c.KeyFilePath)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("WALLET_API_URL", "http://wallet.internal:5000")
	t.Setenv("WALLET_API_TIMEOUT", "3s")
	t.Setenv("TRANSFER_COOLDOWN", "2m")
	t.Setenv("KEYFILE_PATH", "/tmp/wallet.cwt")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "http://wallet.internal:5000", c.WalletAPIURL)
	assert.Equal(t, 3*time.Second, c.WalletAPITimeout)
	assert.Equal(t, 2*time.Minute, c.TransferCooldown)
	assert.Equal(t, "/tmp/wallet.cwt", c.KeyFilePath)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero timeout", "WALLET_API_TIMEOUT", "0s"},
		{"zero breaker failures", "BREAKER_MAX_FAILURES", "0"},
		{"negative cooldown", "TRANSFER_COOLDOWN", "-1s"},
		{"unparsable duration", "SESSION_TTL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()

	assert.Panics(t, func() { Get() })
}
