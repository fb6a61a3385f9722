package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("ALPACA_API_KEY", "PKTEST00000000000000")
	t.Setenv("ALPACA_SECRET_KEY", "secret")
}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ALPACA_PAPER", "MCP_TRANSPORT", "MCP_HOST", "MCP_PORT"} {
		// t.Setenv registers the restore, Unsetenv makes the variable
		// genuinely absent so the struct defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t)
	clearOptional(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "PKTEST00000000000000", cfg.APIKey)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.True(t, cfg.Paper)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "0.0.0.0:8001", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("ALPACA_PAPER", "false")
	t.Setenv("MCP_TRANSPORT", "sse")
	t.Setenv("MCP_HOST", "127.0.0.1")
	t.Setenv("MCP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Paper)
	assert.Equal(t, "sse", cfg.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}

func TestLoadMissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		secret string
	}{
		{name: "no key", key: "", secret: "secret"},
		{name: "no secret", key: "PKTEST00000000000000", secret: ""},
		{name: "neither", key: "", secret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptional(t)
			t.Setenv("ALPACA_API_KEY", tt.key)
			t.Setenv("ALPACA_SECRET_KEY", tt.secret)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "ALPACA_API_KEY and ALPACA_SECRET_KEY must be set")
		})
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	setCredentials(t)
	t.Setenv("MCP_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}
