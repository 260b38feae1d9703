// Package config loads runtime configuration for the doubtsolver client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Environment variables DOUBTSOLVER_BACKEND_URL, DOUBTSOLVER_STATE_DB,
//     DOUBTSOLVER_ONLINE_CHECK_INTERVAL, DOUBTSOLVER_LOG_LEVEL and
//     DOUBTSOLVER_LOG_FORMAT.
//  4. Flags -a, -d, -i and -l.
//
// Example file:
//
//	backend_url: http://localhost:8001
//	state_db: /tmp/doubtsolver.db
//	online_check_interval: 5s
//	log_level: info
package config
