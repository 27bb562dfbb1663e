package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvFile               = "ENV_FILE"
	EnvHTTPAddr           = "HTTP_ADDR"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvJWTSecret          = "JWT_SECRET"
	EnvAccessTokenTTL     = "ACCESS_TOKEN_TTL"
	EnvLogLevel           = "LOG_LEVEL"
	EnvGinMode            = "GIN_MODE"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
)

func envFile() string {
	if v := os.Getenv(EnvFile); v != "" {
		return v
	}
	return ".env"
}

// parseEnv overlays values from the dotenv file at path (if it exists) and
// then from the process environment, which wins. The process environment is
// not modified.
func parseEnv(cfg *Config, path string) error {
	fileVals := map[string]string{}
	if path != "" {
		vals, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileVals = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read env file %s: %w", path, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := lookup(EnvDatabaseDSN); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup(EnvJWTSecret); ok {
		cfg.SecretKey = v
	}
	if v, ok := lookup(EnvAccessTokenTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAccessTokenTTL, err)
		}
		cfg.AccessTokenTTL = d
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvGinMode); ok {
		cfg.GinMode = v
	}
	if v, ok := lookup(EnvCORSAllowedOrigins); ok {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
