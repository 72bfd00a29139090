package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/paramreg/registry/config"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client wraps go-redis. A nil *Client is a valid, disabled client.
type Client struct {
	rdb *redis.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	})

	client := &Client{rdb: rdb}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		_ = rdb.Close()
		logger.GetLogger().Error("Failed to connect to Redis",
			zap.String("address", cfg.RedisAddress()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GetLogger().Info("Successfully connected to Redis",
		zap.String("address", cfg.RedisAddress()),
		zap.Int("database", cfg.Redis.Database),
	)

	return client, nil
}

// NewFromRedis wraps an existing go-redis client.
func NewFromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) IsEnabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.IsEnabled() {
		return fmt.Errorf("redis is disabled")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	return c.rdb.Close()
}

// Increment counts one hit on key inside a fixed window. It returns the hit
// count so far and the time left before the window resets.
func (c *Client) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if !c.IsEnabled() {
		return 0, 0, fmt.Errorf("redis is disabled")
	}

	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		logger.GetLogger().Error("Failed to increment rate window",
			zap.String("key", key),
			zap.Error(err),
		)
		return 0, 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	// the first hit opens the window
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("failed to expire %s: %w", key, err)
		}
		return count, window, nil
	}

	ttl, err := c.rdb.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		// keys must always expire
		if expErr := c.rdb.Expire(ctx, key, window).Err(); expErr != nil {
			logger.GetLogger().Warn("Failed to repair rate window expiry",
				zap.String("key", key),
				zap.Error(expErr),
			)
		}
		ttl = window
	}
	return count, ttl, nil
}
