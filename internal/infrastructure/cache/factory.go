package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/hirehub/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HoldingsCacheFactory creates holdings caches based on configuration
type HoldingsCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// HoldingsCacheFactoryOption is a functional option for configuring the factory
type HoldingsCacheFactoryOption func(*HoldingsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) HoldingsCacheFactoryOption {
	return func(f *HoldingsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) HoldingsCacheFactoryOption {
	return func(f *HoldingsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewHoldingsCacheFactory creates a new factory
func NewHoldingsCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...HoldingsCacheFactoryOption) *HoldingsCacheFactory {
	f := &HoldingsCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed holdings cache
func (f *HoldingsCacheFactory) CreateRedisCache() (*RedisHoldingsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisHoldingsCache(client, f.cacheConfig.KeyPrefix, f.cacheConfig.HoldingsTTL), nil
}

// CreateInMemoryCache creates an in-memory holdings cache.
// This is suitable for single-instance deployments and testing.
func (f *HoldingsCacheFactory) CreateInMemoryCache() *InMemoryHoldingsCache {
	return NewInMemoryHoldingsCache(f.cacheConfig.HoldingsTTL)
}

// CreateCache creates a holdings cache based on the configured backend.
// The redis backend falls back to in-memory when the connection fails and
// fallback is allowed; holdings caches are advisory, so degraded locality
// beats refusing to start.
func (f *HoldingsCacheFactory) CreateCache() (hiring.HoldingsCache, error) {
	if f.cacheConfig.Backend == config.CacheBackendMemory {
		f.logger.Info("using in-memory holdings cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis holdings cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for holdings cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory holdings cache. "+
		"Cached holdings will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
