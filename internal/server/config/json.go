package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bookmarker/internal/flagx"
	"github.com/dmitrijs2005/bookmarker/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations use
// timex.Duration so both "45m" and integer nanoseconds are accepted.
// Only fields present with a non-zero value override the current Config.
type JsonConfig struct {
	HTTPAddr           string         `json:"http_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	AccessTokenTTL     timex.Duration `json:"access_token_ttl"`
	LogLevel           string         `json:"log_level"`
	GinMode            string         `json:"gin_mode"`
	CORSAllowedOrigins []string       `json:"cors_allowed_origins"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config in args, or by $CONFIG.
// No path means nothing to load.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.HTTPAddr != "" {
		cfg.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.AccessTokenTTL.Duration != 0 {
		cfg.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.GinMode != "" {
		cfg.GinMode = c.GinMode
	}
	if len(c.CORSAllowedOrigins) > 0 {
		cfg.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}
