package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_url = "sqlite:///tmp/gateway.db"
registry_url = "https://example.com/registry.yaml"
log_dir = "/var/log/gateway"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 600, cfg.RateLimitGlobalRPM)
	require.Equal(t, 120, cfg.RateLimitPerKeyRPM)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path.toml")
	require.Error(t, err)
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())
}
