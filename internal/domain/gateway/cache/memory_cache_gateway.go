package cache

import (
	"context"
	"strconv"
	"time"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache keeps forecasts in process for ttl
func NewMemoryCache(ttl time.Duration) ForecastGateway {
	return &memoryCache{store: gocache.New(ttl, ttl*2)}
}

func (c *memoryCache) Get(_ context.Context, key string) (*external.StormGlassResponse, error) {
	cached, found := c.store.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	forecast, ok := cached.(*external.StormGlassResponse)
	if !ok {
		return nil, ErrCacheMiss
	}
	return forecast, nil
}

func (c *memoryCache) Set(_ context.Context, key string, forecast *external.StormGlassResponse) error {
	c.store.Set(key, forecast, gocache.DefaultExpiration)
	return nil
}

func (c *memoryCache) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"backend": string(BackendMemory),
			"items":   strconv.Itoa(c.store.ItemCount()),
		},
	}
}
