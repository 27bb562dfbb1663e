package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3333", c.ServerURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, DefaultTokenFile(), c.TokenFile)
}

func TestDefaultTokenFile_UnderConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	p := DefaultTokenFile()
	assert.Equal(t, "token", filepath.Base(p))
	assert.Equal(t, "bookmarker", filepath.Base(filepath.Dir(p)))
}

func TestLoad_NoFileGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333", cfg.ServerURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
