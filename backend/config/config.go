// ABOUTME: Configuration loader for the rainwater backend service
// ABOUTME: Reads an optional dotenv file, then environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const maxForecastWindowYears = 50

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, forecast cache
	CORSAllowedOrigins []string // empty = allow any origin

	// Rate Limiting
	RateLimitEnabled bool
	RateLimitDefault int // GET requests per minute per client (default: 100)
	RateLimitWrite   int // POST requests per minute per client (default: 30)

	// Rainfall dataset. At most one of DatasetPath and DatabaseURL may be set;
	// with neither, the built-in sample dataset is served.
	DatasetPath           string
	DatabaseURL           string
	DatasetReloadInterval time.Duration // 0 disables periodic reload
	DatasetLoadRetries    int

	// Forecast window, inclusive
	ForecastStartYear int
	ForecastEndYear   int

	// Rates and catalogues; empty uses the embedded rate card
	RateCardPath string

	OutlookConcurrency int
}

// DatasetSource names the configured rainfall source for logs and health output.
func (c *Config) DatasetSource() string {
	switch {
	case c.DatabaseURL != "":
		return "postgres"
	case c.DatasetPath != "":
		return "csv"
	default:
		return "sample"
	}
}

func Load() (*Config, error) {
	envFile := getEnv("RAINWATER_ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 30),

		DatasetPath:           strings.TrimSpace(os.Getenv("DATASET_PATH")),
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatasetReloadInterval: getEnvDuration("DATASET_RELOAD_INTERVAL", 0),
		DatasetLoadRetries:    getEnvInt("DATASET_LOAD_RETRIES", 3),

		ForecastStartYear: getEnvInt("FORECAST_START_YEAR", 2025),
		ForecastEndYear:   getEnvInt("FORECAST_END_YEAR", 2036),

		RateCardPath:       strings.TrimSpace(os.Getenv("RATE_CARD_PATH")),
		OutlookConcurrency: getEnvInt("OUTLOOK_CONCURRENCY", 4),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatasetPath != "" && c.DatabaseURL != "" {
		return fmt.Errorf("DATASET_PATH and DATABASE_URL are mutually exclusive")
	}
	if c.ForecastStartYear > c.ForecastEndYear {
		return fmt.Errorf("FORECAST_START_YEAR (%d) must not be after FORECAST_END_YEAR (%d)",
			c.ForecastStartYear, c.ForecastEndYear)
	}
	if span := c.ForecastEndYear - c.ForecastStartYear + 1; span > maxForecastWindowYears {
		return fmt.Errorf("forecast window spans %d years, maximum is %d", span, maxForecastWindowYears)
	}
	if c.DatasetReloadInterval < 0 {
		return fmt.Errorf("DATASET_RELOAD_INTERVAL must not be negative, got %s", c.DatasetReloadInterval)
	}
	if c.DatasetLoadRetries < 0 {
		return fmt.Errorf("DATASET_LOAD_RETRIES must not be negative, got %d", c.DatasetLoadRetries)
	}
	if c.OutlookConcurrency < 1 {
		return fmt.Errorf("OUTLOOK_CONCURRENCY must be at least 1, got %d", c.OutlookConcurrency)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %d", c.CacheTTL)
	}

	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_WRITE", c.RateLimitWrite},
		{"RATE_LIMIT_DEFAULT", c.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("15m") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
