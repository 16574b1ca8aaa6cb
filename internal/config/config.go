package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds runtime configuration loaded from the environment
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	// discovery defaults, overridable per request
	DefaultMethod  string
	DefaultWorkers int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "INFO"),
		DefaultMethod:  getEnvOrDefault("DISCOVERY_METHOD", "rf"),
		DefaultWorkers: getEnvIntOrDefault("DISCOVERY_WORKERS", 1),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultWorkers < 1 {
		return fmt.Errorf("DISCOVERY_WORKERS must be at least 1, got %d", c.DefaultWorkers)
	}
	return nil
}

// HasDatabase reports whether run persistence is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
