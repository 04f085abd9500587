package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the client used for visitor session carts.
func InitRedis(cfg *Config) (*redis.Client, error) {
	addr := cfg.REDIS_ADDR
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.REDIS_PASSWORD,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
