// Package config loads runtime configuration for the GuessCode CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded by a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the GuessCode API
//	-t int      request timeout (seconds)
//	-d string   path of the local database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://guesscode.example.com",
//	  "request_timeout": "15s",
//	  "database_path": "guesscode.db"
//	}
package config
