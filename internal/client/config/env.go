package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	EnvBackendURL          = "DOUBTSOLVER_BACKEND_URL"
	EnvStateDB             = "DOUBTSOLVER_STATE_DB"
	EnvOnlineCheckInterval = "DOUBTSOLVER_ONLINE_CHECK_INTERVAL"
	EnvLogLevel            = "DOUBTSOLVER_LOG_LEVEL"
	EnvLogFormat           = "DOUBTSOLVER_LOG_FORMAT"
)

func parseEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := get(EnvBackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := get(EnvStateDB); v != "" {
		cfg.StateDB = v
	}
	if v := get(EnvOnlineCheckInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", EnvOnlineCheckInterval, v)
		}
		cfg.OnlineCheckInterval = d
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := get(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	return nil
}
