package calendar

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// inlineKeyMinLength separates base64 encoded keys from file paths
const inlineKeyMinLength = 100

// LoadCredentials resolves a service account key given as inline JSON, base64 encoded JSON
// or a path to a JSON file.
func LoadCredentials(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrNotConfigured
	}

	var data []byte
	switch {
	case strings.HasPrefix(value, "{"):
		data = []byte(value)
	case len(value) > inlineKeyMinLength:
		decoded, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 service account key: %w", err)
		}
		data = decoded
	default:
		content, err := os.ReadFile(value)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key file %s: %w", value, err)
		}
		data = content
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("service account key is not valid JSON")
	}
	return data, nil
}
