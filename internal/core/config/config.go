package config

import (
	"time"

	"github.com/dfstats/deltaquery/internal/auth"
	"github.com/dfstats/deltaquery/internal/infra/cache"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Query   QueryConfig      `yaml:"query"`
	Cache   CacheConfig      `yaml:"cache"`
	Auth    auth.Credentials `yaml:"auth"`
	Server  ServerConfig     `yaml:"server"`
	Logging LoggingConfig    `yaml:"logging"`
}

// QueryConfig tunes request execution.
type QueryConfig struct {
	RetryCount  int           `yaml:"retry_count"`
	Timeout     time.Duration `yaml:"timeout"`
	BackoffUnit time.Duration `yaml:"backoff_unit"`
}

// CacheConfig selects and tunes the response cache backend. An empty Redis
// URL means the in-process memory cache.
type CacheConfig struct {
	Expiry time.Duration     `yaml:"expiry"`
	Redis  cache.RedisConfig `yaml:"redis"`
}

// ServerConfig holds the optional metrics/health server settings.
// Port 0 disables the server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
