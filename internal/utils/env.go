package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GetEnvAsString retrieves an environment variable or returns a default value
func GetEnvAsString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// GetEnvAsDuration retrieves an environment variable and converts it to Duration
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultVal
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
