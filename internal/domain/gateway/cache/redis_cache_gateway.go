package cache

import (
	"context"
	"errors"
	"fmt"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
	"surf-calendar/pkg/redis"
)

// forecastCacheName prefixes keys and selects the TTL configured for forecasts
const forecastCacheName = "forecast"

type redisCache struct {
	client *redis.Client
	cache  *redis.Cache
}

// NewRedisCache stores forecasts in Redis under forecast::key
func NewRedisCache(client *redis.Client, opts *redis.CacheOptions) ForecastGateway {
	if opts == nil {
		opts = redis.NewCacheOptions()
	}
	opts.WithCacheName(forecastCacheName)
	return &redisCache{client: client, cache: redis.NewCache(client, opts)}
}

func (c *redisCache) Get(ctx context.Context, key string) (*external.StormGlassResponse, error) {
	var forecast external.StormGlassResponse
	if err := c.cache.Get(ctx, key, &forecast); err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cached forecast %s: %w", key, err)
	}
	return &forecast, nil
}

func (c *redisCache) Set(ctx context.Context, key string, forecast *external.StormGlassResponse) error {
	if err := c.cache.Set(ctx, key, forecast); err != nil {
		return fmt.Errorf("failed to cache forecast %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Health(ctx context.Context) model.ComponentHealthStatus {
	report := c.client.HealthCheck(ctx)
	details := map[string]string{"backend": string(BackendRedis)}
	for key, value := range report.Details {
		details[key] = value
	}
	status := model.StatusUp
	if report.Status != redis.StatusUp {
		status = model.StatusDown
	}
	return model.ComponentHealthStatus{Status: status, Details: details}
}
