package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	EnvListenAddr = "DOUBTSOLVER_LISTEN_ADDR"
	EnvSecretKey  = "JWT_SECRET_KEY"
	EnvTokenTTL   = "DOUBTSOLVER_TOKEN_TTL"
	EnvLogLevel   = "DOUBTSOLVER_LOG_LEVEL"
)

func parseEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := get(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := get(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if v := get(EnvTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", EnvTokenTTL, v)
		}
		cfg.TokenTTL = d
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
