package config

import "time"

// Config holds runtime settings for the DeckPilot CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host[:port] of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - PollInterval: fixed delay between task status fetches.
//   - PollMaxAttempts: status fetch ceiling per task before giving up.
//   - StateDBPath: path of the local SQLite state database.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	PollMaxAttempts uint64
	StateDBPath     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 30 * time.Second
	c.PollInterval = 2 * time.Second
	c.PollMaxAttempts = 150
	c.StateDBPath = "deckpilot.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
