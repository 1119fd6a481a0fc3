// Package redis provides the Redis-backed cache repository. It is selected
// when a Redis host is configured; otherwise the in-memory cache serves.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stylelens/v1/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CacheRepository implements the cache repository against a Redis server.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository connects to Redis and verifies the connection.
func NewCacheRepository(cfg config.RedisConfig, logger *zap.Logger) (*CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return &CacheRepository{
		client: client,
		logger: logger.Named("redis-cache"),
	}, nil
}

// Get retrieves a value.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, err
	}
	return value, nil
}

// Set stores a value with a TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a key.
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Exists reports whether the key is present.
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks the connection, used by the health endpoint.
func (r *CacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *CacheRepository) Close() error {
	return r.client.Close()
}
