package cache

import (
	"context"
	"errors"
	"fmt"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
)

// ErrCacheMiss is returned when no fresh forecast is stored under the key
var ErrCacheMiss = errors.New("forecast not cached")

// Backend selects the forecast cache implementation
type Backend string

const (
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendNone   Backend = "none"
)

// ParseBackend validates a configured backend name
func ParseBackend(value string) (Backend, error) {
	switch backend := Backend(value); backend {
	case BackendRedis, BackendMemory, BackendFile, BackendNone:
		return backend, nil
	case "":
		return BackendNone, nil
	default:
		return "", fmt.Errorf("unknown cache backend %q", value)
	}
}

// ForecastGateway stores raw forecast responses between runs
type ForecastGateway interface {
	// Get returns the cached forecast or ErrCacheMiss
	Get(ctx context.Context, key string) (*external.StormGlassResponse, error)

	// Set stores the forecast under key for the backend TTL
	Set(ctx context.Context, key string, forecast *external.StormGlassResponse) error

	// Health reports the backend status
	Health(ctx context.Context) model.ComponentHealthStatus
}

type noneCache struct{}

// NewNoneCache returns a cache that never hits
func NewNoneCache() ForecastGateway {
	return noneCache{}
}

func (noneCache) Get(context.Context, string) (*external.StormGlassResponse, error) {
	return nil, ErrCacheMiss
}

func (noneCache) Set(context.Context, string, *external.StormGlassResponse) error {
	return nil
}

func (noneCache) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusUnknown,
		Details: map[string]string{"backend": string(BackendNone)},
	}
}
