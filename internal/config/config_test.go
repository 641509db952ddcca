package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SALESBOARD_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "data/sales.csv", cfg.Data.SalesPath)
	require.Equal(t, filepath.Join(home, ".local", "share", "salesboard", "salesboard.db"), cfg.Database.Path)
	require.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.UI.SkipLogin)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[data]
sales_path = "/srv/sales.csv"

[ui]
skip_login = true
`), 0o600))
	t.Setenv("SALESBOARD_CONFIG", path)
	t.Setenv("SALESBOARD_SERVER_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/srv/sales.csv", cfg.Data.SalesPath)
	require.True(t, cfg.UI.SkipLogin)
	require.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SALESBOARD_CONFIG", "")
	t.Setenv("SALESBOARD_LOG_LEVEL", "chatty")

	_, err := Load()
	require.ErrorContains(t, err, "invalid config")
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SALESBOARD_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Snapshot.Dir = "/tmp/exports"
	cfg.UI.AmountUnit = "KRW"
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}
