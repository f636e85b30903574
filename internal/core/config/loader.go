package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, for running
// without a config file (credentials from environment).
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	cfg.Auth.OpenID = os.Getenv("DELTAQUERY_OPENID")
	cfg.Auth.Token = os.Getenv("DELTAQUERY_TOKEN")
	if acctype := os.Getenv("DELTAQUERY_ACCTYPE"); acctype != "" {
		cfg.Auth.AccType = acctype
	}
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Query.RetryCount == 0 {
		cfg.Query.RetryCount = 3
	}
	if cfg.Query.Timeout == 0 {
		cfg.Query.Timeout = 30 * time.Second
	}
	if cfg.Query.BackoffUnit == 0 {
		cfg.Query.BackoffUnit = 1 * time.Second
	}
	if cfg.Cache.Expiry == 0 {
		cfg.Cache.Expiry = 5 * time.Minute
	}
	if cfg.Auth.AccType == "" {
		cfg.Auth.AccType = "qc"
	}
}
