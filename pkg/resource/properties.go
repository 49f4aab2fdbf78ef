package resource

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var (
	mu         sync.RWMutex
	properties = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// DefaultPath returns the properties file location, honouring PROPERTIES_FILE_PATH.
func DefaultPath() string {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok && value != "" {
		return value
	}
	return defaultPropertiesPath
}

// Init loads application properties from a YAML file and resolves ${ENV:default} placeholders.
func Init(filepath string) error {
	source := viper.New()
	source.SetConfigFile(filepath)
	source.SetConfigType("yml")

	if err := source.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}
	apply(source)
	return nil
}

// Load reads YAML properties from r, used for the embedded defaults.
func Load(r io.Reader) error {
	source := viper.New()
	source.SetConfigType("yml")
	if err := source.ReadConfig(r); err != nil {
		return fmt.Errorf("fail to read properties: %w", err)
	}
	apply(source)
	return nil
}

func apply(source *viper.Viper) {
	resolved := viper.New()
	for key, value := range flatten("", source.AllSettings()) {
		resolved.Set(key, value)
	}

	mu.Lock()
	properties = resolved
	mu.Unlock()
}

// Set overrides a single property. Mostly useful in tests.
func Set(key string, value any) {
	mu.Lock()
	defer mu.Unlock()
	properties.Set(key, value)
}

// flatten reads the YAML tree recursively into dotted keys
func flatten(prefix string, data map[string]any) map[string]any {
	result := make(map[string]any)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariables(v)
		case map[string]any:
			for k, nested := range flatten(fullKey, v) {
				result[k] = nested
			}
		case []any:
			items := make([]any, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, resolveEnvVariables(s))
					continue
				}
				items = append(items, item)
			}
			result[fullKey] = items
		default:
			result[fullKey] = v
		}
	}
	return result
}

// resolveEnvVariables replaces every ${NAME:default} occurrence with the environment value or its default
func resolveEnvVariables(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

func get() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	return properties
}

func IsSet(key string) bool {
	return get().IsSet(key)
}

func Get(key string) any {
	return get().Get(key)
}

func GetString(key string) string {
	return strings.TrimSpace(get().GetString(key))
}

func GetBool(key string) bool {
	return get().GetBool(key)
}

func GetDuration(key string) time.Duration {
	return get().GetDuration(key)
}

func GetInt(key string) int {
	return get().GetInt(key)
}

func GetInt32(key string) int32 {
	return get().GetInt32(key)
}

func GetFloat64(key string) float64 {
	return get().GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return get().GetStringSlice(key)
}
