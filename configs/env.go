package configs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"surf-calendar/pkg/log"
	"surf-calendar/pkg/msg"
	"surf-calendar/pkg/resource"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
	Port            string
}

// Load reads the .env file, the properties and the messages. Files on disk take
// precedence over the embedded defaults.
func Load() (*EnvConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := loadFileOrDefault(resource.DefaultPath(), resource.Init, func() error {
		return resource.Load(bytes.NewReader(ApplicationYAML))
	}); err != nil {
		return nil, err
	}
	if err := loadFileOrDefault(msg.DefaultPath(), msg.Init, func() error {
		return msg.Load(bytes.NewReader(MessagesYAML))
	}); err != nil {
		return nil, err
	}

	if level := resource.GetString("app.log-level"); level != "" {
		log.SetLevel(level)
	}

	return &EnvConfig{
		ApplicationName: getStringOrDefault("app.name", "surf-calendar"),
		ContextPath:     getStringOrDefault("app.server.context-path", "/surf-calendar"),
		Port:            getStringOrDefault("app.server.port", "8080"),
	}, nil
}

func loadFileOrDefault(path string, fromFile func(string) error, fromEmbedded func() error) error {
	if _, err := os.Stat(path); err == nil {
		return fromFile(path)
	}
	return fromEmbedded()
}

func getStringOrDefault(key, defaultValue string) string {
	value := resource.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
