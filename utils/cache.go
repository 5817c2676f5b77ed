// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"powerup/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// NewLockClient connects the Redis database used for sweep coordination.
func NewLockClient(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (lock): %w", err)
	}
	return client, nil
}

// QueueRedisOpt is the asynq connection for the push delivery queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
