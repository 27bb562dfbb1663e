package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Setenv("CONFIG", "")
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"http_addr":            "www.example:9000",
		"database_dsn":         "postgres://db",
		"secret_key":           "my_secret_key",
		"access_token_ttl":     "30m",
		"log_level":            "warn",
		"gin_mode":             "test",
		"cors_allowed_origins": []string{"https://app.example"},
		"shutdown_timeout":     float64(3 * time.Second),
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "test", cfg.GinMode)
		assert.Equal(t, []string{"https://app.example"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "error"})
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		want := defaults()
		want.LogLevel = "error"
		assert.Equal(t, want, cfg)
	})

	t.Run("CONFIG env fallback", func(t *testing.T) {
		t.Setenv("CONFIG", full)
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, nil))
		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
	})

	t.Run("no file → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")})
		assert.ErrorContains(t, err, "read config")
	})

	t.Run("bad duration", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "bad.json", map[string]any{"access_token_ttl": true})
		assert.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})
}
