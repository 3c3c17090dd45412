package config

import (
	"flag"
	"os"
	"time"

	"github.com/deckpilot/deckpilot/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-t int      per-request timeout in seconds (default from Config)
//	-i int      task poll interval in seconds (default from Config)
//	-n int      task poll attempt ceiling (default from Config)
//	-d string   path of the local state database (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-n", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "task poll interval (in seconds)")
	fs.Uint64Var(&cfg.PollMaxAttempts, "n", cfg.PollMaxAttempts, "task poll attempt ceiling")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "path of the local state database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
