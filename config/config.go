// Package config provides environment-backed configuration for nfcepipe.
// Every setting has a sensible default; CLI flags may override the loaded
// values.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings.
type Config struct {
	// Marker is the id of the element whose presence signals that the
	// invoice page finished rendering.
	Marker string
	// Timeout bounds the wait for the marker element.
	Timeout time.Duration
	// ChromePath points at a browser binary; empty lets rod resolve one.
	ChromePath string
	// OutputDir receives rendered exports; empty means the working directory.
	OutputDir string
	// DBPath is the SQLite database used by --save.
	DBPath string
	// LogLevel is the zerolog level name (debug/info/warn/error).
	LogLevel string
}

// Load creates a Config from environment variables with defaults.
func Load() *Config {
	return &Config{
		Marker:     getEnv("NFCE_MARKER", "tabResult"),
		Timeout:    getEnvDuration("NFCE_TIMEOUT", 5*time.Second),
		ChromePath: getEnv("CHROME_PATH", ""),
		OutputDir:  getEnv("NFCE_OUTPUT_DIR", ""),
		DBPath:     getEnv("NFCE_DB", "nfce.db"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}
