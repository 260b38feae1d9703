package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/flagx"
	"github.com/dmitrijs2005/doubtsolver/internal/timex"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	ListenAddr string         `json:"listen_addr" yaml:"listen_addr"`
	SecretKey  string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL   timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
	LogFormat  string         `json:"log_format" yaml:"log_format"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.TokenTTL.Duration > 0 {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}
