// Package config loads runtime configuration for the DeckPilot CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      per-request timeout (seconds)
//	-i int      task poll interval (seconds)
//	-n int      task poll attempt ceiling
//	-d string   path of the local state database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "2s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "request_timeout": "30s",
//	  "poll_interval": "2s",
//	  "poll_max_attempts": 150,
//	  "state_db_path": "deckpilot.db"
//	}
//
// Primary API
//
//   - type Config                     — holds connection, polling and local state settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
