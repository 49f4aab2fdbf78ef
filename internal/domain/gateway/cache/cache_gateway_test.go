package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
	"surf-calendar/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForecast() *external.StormGlassResponse {
	return &external.StormGlassResponse{
		Hours: []external.StormGlassHour{{
			Time:        "2025-06-10T05:00:00+00:00",
			SwellHeight: map[string]float64{"noaa": 1.1},
		}},
		Meta: external.StormGlassMeta{RequestCount: 2},
	}
}

func TestParseBackend(t *testing.T) {
	for _, value := range []string{"redis", "memory", "file", "none"} {
		backend, err := ParseBackend(value)
		require.NoError(t, err)
		assert.Equal(t, Backend(value), backend)
	}

	backend, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendNone, backend)

	_, err = ParseBackend("memcached")
	assert.Error(t, err)
}

func TestNoneCacheAlwaysMisses(t *testing.T) {
	cache := NewNoneCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", sampleForecast()))
	_, err := cache.Get(ctx, "k")

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, model.StatusUnknown, cache.Health(ctx).Status)
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "herzliya")
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "herzliya", sampleForecast()))
	got, err := cache.Get(ctx, "herzliya")

	require.NoError(t, err)
	assert.Equal(t, 2, got.Meta.RequestCount)
	assert.Equal(t, "1", cache.Health(ctx).Details["items"])
}

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache(10 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "herzliya", sampleForecast()))

	assert.Eventually(t, func() bool {
		_, err := cache.Get(ctx, "herzliya")
		return err == ErrCacheMiss
	}, time.Second, 5*time.Millisecond)
}

func TestFileCacheRoundTripAndExpiry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache := NewFileCache(dir, time.Hour).(*fileCache)
	now := time.Date(2025, time.June, 10, 5, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := cache.Get(ctx, "32.1752,34.7998")
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "32.1752,34.7998", sampleForecast()))
	assert.FileExists(t, filepath.Join(dir, "forecast-cache-32.1752_34.7998.json"))

	got, err := cache.Get(ctx, "32.1752,34.7998")
	require.NoError(t, err)
	assert.Equal(t, 1.1, got.Hours[0].SwellHeight["noaa"])

	now = now.Add(2 * time.Hour)
	_, err = cache.Get(ctx, "32.1752,34.7998")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileCacheTreatsCorruptFileAsMiss(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir, 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "forecast-cache-k.json"), []byte("{oops"), 0o600))

	_, err := cache.Get(context.Background(), "k")

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, model.StatusUp, cache.Health(context.Background()).Status)
}

func TestRedisCacheReportsUnreachableServer(t *testing.T) {
	cfg := redis.NewRedisConfig().WithHost("127.0.0.1").WithPort(1)
	cfg.DialTimeout = 50 * time.Millisecond
	cfg.MaxRetries = 0
	cfg.MinIdleConns = 0
	client, err := redis.NewClient(cfg)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	cache := NewRedisCache(client, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cache.Get(ctx, "herzliya")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	health := cache.Health(ctx)
	assert.Equal(t, model.StatusDown, health.Status)
	assert.Equal(t, "redis", health.Details["backend"])
	assert.NotEmpty(t, health.Details["error"])
}
