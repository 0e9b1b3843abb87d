package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CODEPAD_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:4000/workspace", cfg.Server.URL)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, DefaultEditor(), cfg.Editor)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "codepad.toml")
	t.Setenv("CODEPAD_CONFIG", path)

	cfg := Config{
		Database: DatabaseConfig{Path: filepath.Join(home, "db.sqlite")},
		Server:   ServerConfig{URL: "ws://example.test/ws", Token: "tok"},
		Log:      LogConfig{Level: "debug", Dir: filepath.Join(home, "logs")},
		Editor:   Editor{FontSize: 18, Theme: "light", VimMode: true},
	}
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CODEPAD_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("CODEPAD_SERVER_URL", "ws://override/ws")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ws://override/ws", cfg.Server.URL)
}

func TestEditorNormalize(t *testing.T) {
	e := Editor{FontSize: 2, Theme: "LIGHT"}.Normalize()
	require.Equal(t, 8, e.FontSize)
	require.Equal(t, "light", e.Theme)

	e = Editor{FontSize: 99, Theme: "neon"}.Normalize()
	require.Equal(t, 32, e.FontSize)
	require.Equal(t, "dark", e.Theme)
}
