// Package config loads server configuration from the environment
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds the server's runtime configuration
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisAddr string

	SRDBaseURL  string
	SRDCacheTTL time.Duration
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		SRDBaseURL:  getEnv("SRD_BASE_URL", ""),
		SRDCacheTTL: parseDuration(getEnv("SRD_CACHE_TTL", "1h")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Hour
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
