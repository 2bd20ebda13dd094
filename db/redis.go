package db

import (
	"context"
	"fmt"
	"go-economy-bot/config"
	"go-economy-bot/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for the configured Redis server, or nil
// when no host is configured.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	cfg := config.AppConfig.Redis
	if cfg.Host == "" {
		logger.Log.Info("Redis host not configured, account cache disabled")
		return nil, nil
	}

	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Password,
		DB:       0,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping Redis")
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Log.WithField("address", redisAddr).Info("Redis connection established successfully")
	return rdb, nil
}
