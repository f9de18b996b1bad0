package utils

import (
	"context"
	"fmt"

	"quotation-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Initialize Redis client for cache invalidation
var rdb = redis.NewClient(&redis.Options{
	Addr:     config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
	Password: "",
	DB:       0,
})

// InvalidateCache drops every cached key for the given resource type
// ("quotations", "clients"). Uses SCAN instead of KEYS so a large keyspace
// does not block Redis.
func InvalidateCache(resourceType string) error {
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}
	return nil
}

// InvalidateCacheAsync invalidates in the background so write paths never
// wait on Redis.
func InvalidateCacheAsync(resourceType string) {
	go func() {
		if err := InvalidateCache(resourceType); err != nil {
			config.Logger.Warn("Cache invalidation failed",
				zap.String("resource_type", resourceType),
				zap.Error(err))
		}
	}()
}
