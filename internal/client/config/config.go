package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the bookmarker CLI.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3333"
	c.TokenFile = DefaultTokenFile()
	c.RequestTimeout = 30 * time.Second
}

// DefaultTokenFile is where signin stores the access token unless told
// otherwise: <user config dir>/bookmarker/token.
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".bookmarker-token"
	}
	return filepath.Join(dir, "bookmarker", "token")
}

// Load applies defaults and then overlays the JSON file at path, if any.
// Command-line flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
