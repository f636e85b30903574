package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// Redis is a ResponseCache backed by a Redis instance, for sharing cached
// responses across processes. Expiry is enforced server-side via key TTL.
type Redis struct {
	rdb    *redis.Client
	expiry time.Duration
	log    *slog.Logger
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(cfg RedisConfig, expiry time.Duration, log *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	if log == nil {
		log = slog.Default()
	}
	return &Redis{rdb: rdb, expiry: expiry, log: log}, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

func responseKey(key domain.CacheKey) string {
	return fmt.Sprintf("response:%s", key)
}

// Get returns the cached body if the key has not expired. Redis errors are
// logged and reported as a miss so the caller falls through to the network.
func (r *Redis) Get(ctx context.Context, key domain.CacheKey) (string, bool) {
	body, err := r.rdb.Get(ctx, responseKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("redis cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return body, true
}

// Put stores the body with the configured TTL, overwriting any prior entry.
func (r *Redis) Put(ctx context.Context, key domain.CacheKey, body string) {
	if err := r.rdb.Set(ctx, responseKey(key), body, r.expiry).Err(); err != nil {
		r.log.Warn("redis cache write failed", "key", key, "error", err)
	}
}
