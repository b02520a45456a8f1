package config

import (
	"strings"
	"time"
)

// Config holds runtime settings for the GuessCode CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the GuessCode API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local SQLite database holding the credential.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "guesscode.db"
}

// StatusHubURL derives the websocket endpoint of the status hub from the
// API base URL.
func (c *Config) StatusHubURL() string {
	base := c.ServerBaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return strings.TrimRight(base, "/") + "/status-hub"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally seeded by a .env file), a JSON file
// (if provided), and command-line flags. Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
