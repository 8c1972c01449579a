// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"globaled/config"

	"github.com/go-redis/redis/v8"
)

// AIContextCacheClient backs the redis conversation store.
var AIContextCacheClient *redis.Client

// InitAIContextCache connects to the redis DB reserved for AI conversations.
func InitAIContextCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAIDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (AI context): %w", err)
	}
	AIContextCacheClient = client
	return nil
}

// GetAIContextCacheClient returns the AI conversation client, or nil if it was never initialised.
func GetAIContextCacheClient() *redis.Client {
	return AIContextCacheClient
}
