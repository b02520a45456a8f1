package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file
// in the working directory seeds the environment first; its absence is
// not an error.
//
// Variables:
//
//	GUESSCODE_SERVER_URL       API base URL
//	GUESSCODE_REQUEST_TIMEOUT  per-request timeout, e.g. "15s"
//	GUESSCODE_DB_PATH          local database path
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("GUESSCODE_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("GUESSCODE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("GUESSCODE_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
}
