// Package cache provides a short-TTL Redis response cache. Caching is
// strictly optional: a nil *ResponseCache disables it without any code-path
// changes in the handlers. Nothing durable lives here; the service stays
// stateless.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tomodex/aggregator-api/internal/config"
)

// ResponseCache wraps a Redis client for caching rendered responses.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewResponseCache connects to Redis and verifies the connection.
func NewResponseCache(cfg config.RedisConfig, ttl time.Duration, logger *logrus.Logger) (*ResponseCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newResponseCache(rdb, ttl, logger), nil
}

func newResponseCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *ResponseCache {
	return &ResponseCache{
		client: client,
		ttl:    ttl,
		logger: logger.WithField("component", "cache"),
	}
}

// Get unmarshals a cached response into dest. A nil cache, a miss, and a
// decode failure all report false.
func (c *ResponseCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("failed to unmarshal cached response")
		return false
	}
	return true
}

// Set stores a response under the configured TTL. Failures are logged and
// swallowed; the response has already been computed.
func (c *ResponseCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("failed to marshal response for caching")
		return
	}
	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("failed to cache response")
	}
}

// HealthCheck verifies the Redis connection. A nil cache is healthy by
// definition since caching is optional.
func (c *ResponseCache) HealthCheck(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *ResponseCache) Close() {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		c.logger.WithError(err).Error("error closing Redis client")
	}
}
