package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the doubtsolver client.
type Config struct {
	// BackendURL is the backend origin; requests go to BackendURL + "/api".
	BackendURL string
	// StateDB is the SQLite file holding the persisted session.
	StateDB string
	// OnlineCheckInterval is how often the REPL probes the backend.
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFormat           string
}

const (
	DefaultBackendURL          = "http://localhost:8001"
	DefaultOnlineCheckInterval = 3 * time.Second
)

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = DefaultBackendURL
	c.StateDB = defaultStateDB()
	c.OnlineCheckInterval = DefaultOnlineCheckInterval
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

func defaultStateDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "doubtsolver.db"
	}
	return filepath.Join(dir, "doubtsolver", "state.db")
}

// Load builds a Config from defaults, the config file named by -c/-config,
// the environment and finally the flags in args (os.Args[1:] style).
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}
