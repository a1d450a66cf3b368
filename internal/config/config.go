/**
 * @description
 * Configuration loader for the Gainer Watch backend.
 * Responsible for reading environment variables, setting defaults, and performing validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 * - standard "fmt": For error reporting
 *
 * @notes
 * - All harvest timings (cycle interval, retention, lookback) are env-overridable
 *   so tests and ops can shrink the windows.
 * - Uses a Singleton-like pattern where Load() returns a Config struct.
 */

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
	Server  ServerConfig
	Redis   RedisConfig
	Source  SourceConfig
	Harvest HarvestConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// SourceConfig holds the market-data source settings
type SourceConfig struct {
	GainersURL string
	UserAgent  string
	Timeout    time.Duration
}

// HarvestConfig holds the update-cycle timings
type HarvestConfig struct {
	Interval  time.Duration // how often the update cycle runs
	Retention time.Duration // how long symbol history is kept
	Lookback  time.Duration // baseline age for the multi-day gain
	TopN      int           // rows taken from the source table
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Source: SourceConfig{
			GainersURL: getEnv("GAINERS_URL", "https://finance.yahoo.com/markets/stocks/gainers/"),
			UserAgent:  getEnv("SOURCE_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
			Timeout:    getEnvAsDuration("SOURCE_TIMEOUT", 15*time.Second),
		},
		Harvest: HarvestConfig{
			Interval:  getEnvAsDuration("HARVEST_INTERVAL", time.Hour),
			Retention: getEnvAsDuration("HISTORY_RETENTION", 7*24*time.Hour),
			Lookback:  getEnvAsDuration("GAIN_LOOKBACK", 3*24*time.Hour),
			TopN:      getEnvAsInt("HARVEST_TOP_N", 50),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required and sane variables
func validate(cfg *Config) error {
	if cfg.Source.GainersURL == "" {
		return fmt.Errorf("GAINERS_URL is required")
	}
	if cfg.Harvest.Interval <= 0 {
		return fmt.Errorf("HARVEST_INTERVAL must be positive")
	}
	if cfg.Harvest.Lookback >= cfg.Harvest.Retention {
		return fmt.Errorf("GAIN_LOOKBACK (%s) must be shorter than HISTORY_RETENTION (%s)",
			cfg.Harvest.Lookback, cfg.Harvest.Retention)
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper to get env var as duration (e.g. "1h", "30m")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
