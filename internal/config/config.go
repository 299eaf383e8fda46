package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AnalyticsConfig holds settings for the derived-view recompute engine.
type AnalyticsConfig struct {
	Debounce time.Duration
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/expense_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Analytics: AnalyticsConfig{
			Debounce: getEnvMillis("ANALYTICS_DEBOUNCE_MS", 50),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvMillis reads an integer millisecond value, falling back to the
// default on missing or malformed input.
func getEnvMillis(key string, defaultMillis int) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(defaultMillis) * time.Millisecond
	}
	millis, err := strconv.Atoi(value)
	if err != nil || millis <= 0 {
		return time.Duration(defaultMillis) * time.Millisecond
	}
	return time.Duration(millis) * time.Millisecond
}
