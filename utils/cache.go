// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"salonbook/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client, used for computed slot lists
// and transient slot holds during booking confirmation.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// SlotCacheKey builds the cache key for a computed slot list. The
// professional component is empty for salon-wide searches.
func SlotCacheKey(salonID, date, professionalID string, durationMinutes int) string {
	return fmt.Sprintf("slots:%s:%s:%s:%d", salonID, date, professionalID, durationMinutes)
}

// SlotCachePattern matches every cached slot list for a salon and date,
// used for invalidation after a booking write.
func SlotCachePattern(salonID, date string) string {
	return fmt.Sprintf("slots:%s:%s:*", salonID, date)
}

// SlotHoldKey builds the key for a transient hold on a specific start time.
func SlotHoldKey(salonID string, start time.Time) string {
	return fmt.Sprintf("hold:%s:%d", salonID, start.Unix())
}
