package utils

import (
	"context"
	"log"
	"time"

	"glowbook/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix namespaces cached token hashes in Redis.
const AuthCachePrefix = "auth:token:"

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching,
// or nil when the cache has not been initialized. Callers treat nil as
// cache-disabled rather than an error.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
