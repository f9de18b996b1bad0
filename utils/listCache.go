package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"quotation-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listCacheTTL = 10 * time.Minute

func cacheLogger() *zap.Logger {
	if config.Logger == nil {
		return zap.NewNop()
	}
	return config.Logger
}

// ListCacheKey builds a deterministic key for one filtered page of a
// resource list. Keys live under the "<resourceType>:" prefix, the same one
// InvalidateCache sweeps, so every write to the resource clears them.
func ListCacheKey(resourceType string, filters map[string]string, page, pageSize int) string {
	query := fmt.Sprintf("resource=%s&page=%d&page_size=%d", resourceType, page, pageSize)

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		query += fmt.Sprintf("&%s=%s", name, filters[name])
	}

	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:list:%s", resourceType, hex.EncodeToString(sum[:]))
}

// GetCachedList returns the cached JSON body for the key, if present. Redis
// being unreachable degrades to a miss.
func GetCachedList(key string) ([]byte, bool) {
	payload, err := rdb.Get(context.Background(), key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cacheLogger().Warn("List cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// CacheList stores a rendered JSON body under the key with a short TTL.
func CacheList(key string, payload []byte) {
	if err := rdb.Set(context.Background(), key, payload, listCacheTTL).Err(); err != nil {
		cacheLogger().Warn("List cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
