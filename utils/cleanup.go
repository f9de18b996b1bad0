package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quotation-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFile removes a generated artifact once it is older than the
// retention window.
func CleanupExpiredFile(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		config.Logger.Info("Expired artifact deleted", zap.String("path", filePath))
	}
	return nil
}

// CleanupGeneratedArtifacts walks the docx and pdf output directories and
// drops everything past the retention window. Quotation data itself is
// untouched; documents regenerate on demand.
func CleanupGeneratedArtifacts(cfg config.AppConfig) error {
	ttl := time.Duration(cfg.ArtifactRetentionDays) * 24 * time.Hour

	for _, sub := range []string{"docx", "pdf"} {
		dir := filepath.Join(cfg.OutputDir, sub)
		files, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("error reading artifact directory %s: %v", dir, err)
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if err := CleanupExpiredFile(filepath.Join(dir, file.Name()), ttl); err != nil {
				config.Logger.Warn("Artifact cleanup skipped a file", zap.Error(err))
			}
		}
	}
	return nil
}

// CleanupExpiredCache drops cached listing responses so the next request
// rebuilds them from the database.
func CleanupExpiredCache(redisClient *redis.Client) error {
	for _, resourceType := range []string{"quotations", "clients"} {
		pattern := fmt.Sprintf("%s:*", resourceType)
		iter := redisClient.Scan(context.Background(), 0, pattern, 0).Iterator()
		for iter.Next(context.Background()) {
			if err := redisClient.Del(context.Background(), iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to delete cache key %s: %v", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("error during cache scan: %v", err)
		}
	}
	return nil
}

// CleanupAllExpired handles artifact and cache cleanup in one pass.
func CleanupAllExpired(cfg config.AppConfig, redisClient *redis.Client) error {
	if err := CleanupGeneratedArtifacts(cfg); err != nil {
		return err
	}
	if redisClient != nil {
		if err := CleanupExpiredCache(redisClient); err != nil {
			return fmt.Errorf("error cleaning up cache: %v", err)
		}
	}
	return nil
}

// RunScheduledCleanup runs cleanup daily at 1 AM with retries.
func RunScheduledCleanup(cfg config.AppConfig, redisClient *redis.Client) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Running scheduled artifact cleanup")

		for retries := 0; retries < maxRetries; retries++ {
			err := CleanupAllExpired(cfg, redisClient)
			if err == nil {
				config.Logger.Info("Scheduled cleanup finished")
				return
			}
			config.Logger.Error("Scheduled cleanup attempt failed",
				zap.Int("attempt", retries+1), zap.Error(err))
			time.Sleep(retryDelay)
		}
		config.Logger.Error("Scheduled cleanup failed after retries",
			zap.Int("max_retries", maxRetries))
	})

	c.Start()
	return c
}
