package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection parameters for the Redis server backing the
// response cache and the login rate limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// NewRedisClient connects to Redis using environment configuration and
// verifies the connection with a short ping. It returns nil when the server
// is unreachable; callers degrade by disabling caching and rate limiting.
func NewRedisClient() *redis.Client {
	var cfg RedisConfig
	if err := env.Parse(&cfg); err != nil {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
