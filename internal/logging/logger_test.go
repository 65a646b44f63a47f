package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromSettings(t *testing.T) {
	c := FromSettings("debug", "console", false)
	assert.Equal(t, "debug", c.Level)
	assert.Equal(t, "console", c.Format)
	assert.False(t, c.Development)

	dev := FromSettings("", "json", true)
	assert.Equal(t, "debug", dev.Level)
	assert.Equal(t, "console", dev.Format, "development mode keeps the console encoder")
	assert.True(t, dev.Development)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(DefaultConfig())
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(Config{Level: "info", Format: "xml"})
	assert.Error(t, err, "unknown encoder")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "0xabc", Short("0xabc"))
	sig := "0x1234567890abcdef1234567890abcdef1234567890"
	assert.Equal(t, "0x12345678…1234567890", Short(sig))
}

func TestOrGlobal(t *testing.T) {
	assert.Same(t, L(), OrGlobal(nil))
	l := NewNoOpLogger()
	assert.Same(t, l, OrGlobal(l))
}
