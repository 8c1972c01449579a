package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services. Redis is nil when
// conversations are kept in memory.
type HealthStatus struct {
	Redis        *bool     `json:"redis,omitempty"`
	AIConfigured bool      `json:"aiConfigured"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, redisClient *redis.Client, aiConfigured bool) HealthStatus {
	status := HealthStatus{AIConfigured: aiConfigured, CheckedAt: time.Now()}
	if redisClient != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		ok := redisClient.Ping(pingCtx).Err() == nil
		cancel()
		status.Redis = &ok
	}
	return status
}

// StartHealthMonitor checks dependencies immediately and then every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, aiConfigured bool, interval time.Duration) {
	update := func() {
		status := checkHealth(ctx, redisClient, aiConfigured)
		mu.Lock()
		currentHealth = status
		mu.Unlock()
	}
	update()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update()
			}
		}
	}()
}
