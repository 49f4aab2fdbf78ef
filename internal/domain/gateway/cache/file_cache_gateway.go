package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type fileEntry struct {
	StoredAt time.Time                    `json:"storedAt"`
	Forecast *external.StormGlassResponse `json:"forecast"`
}

type fileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileCache stores one JSON file per key in dir. Entries older than ttl are misses;
// a zero ttl never expires.
func NewFileCache(dir string, ttl time.Duration) ForecastGateway {
	return &fileCache{dir: dir, ttl: ttl, now: time.Now}
}

func (c *fileCache) path(key string) string {
	return filepath.Join(c.dir, "forecast-cache-"+unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (c *fileCache) Get(_ context.Context, key string) (*external.StormGlassResponse, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast cache: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Forecast == nil {
		return nil, ErrCacheMiss
	}
	if c.ttl > 0 && c.now().Sub(entry.StoredAt) > c.ttl {
		return nil, ErrCacheMiss
	}
	return entry.Forecast, nil
}

func (c *fileCache) Set(_ context.Context, key string, forecast *external.StormGlassResponse) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(fileEntry{StoredAt: c.now(), Forecast: forecast}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".forecast-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write forecast cache: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write forecast cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write forecast cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		return fmt.Errorf("failed to write forecast cache: %w", err)
	}
	return nil
}

func (c *fileCache) Health(context.Context) model.ComponentHealthStatus {
	details := map[string]string{"backend": string(BackendFile), "dir": c.dir}
	if info, err := os.Stat(c.dir); err == nil && !info.IsDir() {
		details["error"] = "cache path is not a directory"
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
