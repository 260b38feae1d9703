// Package config handles configuration for the development backend:
// defaults, an optional JSON or YAML file, environment variables and
// command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - ListenAddr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing access tokens (HS256). The default is
//     only suitable for local runs.
//   - TokenTTL: access token lifetime.
//   - LogLevel / LogFormat: passed to logging.New.
type Config struct {
	ListenAddr string
	SecretKey  string
	TokenTTL   time.Duration
	LogLevel   string
	LogFormat  string
}

const (
	DefaultListenAddr = ":8001"
	DefaultTokenTTL   = 30 * 24 * time.Hour
)

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = DefaultListenAddr
	c.SecretKey = "doubtsolver-dev-secret"
	c.TokenTTL = DefaultTokenTTL
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// Load builds a Config from defaults, the file named by -c/-config, the
// environment and finally the flags in args.
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
