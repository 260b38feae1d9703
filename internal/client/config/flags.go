package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backend origin, e.g. http://localhost:8001
//	-d string   path of the local state database
//	-i int      online check interval in seconds
//	-l string   log level (debug, info, warn, error)
//
// Flags owned by other stages (-c/-config) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("doubtsolver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend origin")
	fs.StringVar(&cfg.StateDB, "d", cfg.StateDB, "state database path")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *interval <= 0 {
		return fmt.Errorf("parse flags: -i must be positive, got %d", *interval)
	}
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	return nil
}
