package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:5000", cfg.ServerBaseURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, "guesscode.db", cfg.DatabasePath)
}

func TestStatusHubURL(t *testing.T) {
	cases := map[string]string{
		"http://127.0.0.1:5000":          "ws://127.0.0.1:5000/status-hub",
		"https://guesscode.example.com":  "wss://guesscode.example.com/status-hub",
		"https://guesscode.example.com/": "wss://guesscode.example.com/status-hub",
	}
	for base, want := range cases {
		cfg := &Config{ServerBaseURL: base}
		require.Equal(t, want, cfg.StatusHubURL(), "base %s", base)
	}
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("GUESSCODE_SERVER_URL", "https://env.example.com")
	t.Setenv("GUESSCODE_REQUEST_TIMEOUT", "30s")
	t.Setenv("GUESSCODE_DB_PATH", "/tmp/env.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "https://env.example.com", cfg.ServerBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/env.db", cfg.DatabasePath)
}

func TestParseEnv_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("GUESSCODE_REQUEST_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	data := []byte(`{
		"server_base_url": "https://json.example.com",
		"request_timeout": "20s",
		"database_path": "/tmp/json.db"
	}`)

	var jc JsonConfig
	require.NoError(t, json.Unmarshal(data, &jc))
	require.Equal(t, "https://json.example.com", jc.ServerBaseURL)
	require.Equal(t, 20*time.Second, jc.RequestTimeout.Duration)
	require.Equal(t, "/tmp/json.db", jc.DatabasePath)
}
