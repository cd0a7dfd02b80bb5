package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultRateLimit is the number of review submissions admitted per
	// identity key per window.
	DefaultRateLimit = 5
	// DefaultRateWindow is the trailing window over which admissions are counted.
	DefaultRateWindow = time.Minute
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string
	OpenAIAPIKey  string
	HFAccessToken string
	LogLevel      string
	LogFormat     string
	RateLimit     int
	RateWindow    time.Duration
}

func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		HFAccessToken: getEnv("HF_ACCESS_TOKEN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		RateLimit:     DefaultRateLimit,
		RateWindow:    DefaultRateWindow,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	if raw := os.Getenv("RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("RATE_LIMIT must be a positive integer, got %q", raw)
		}
		cfg.RateLimit = limit
	}

	if raw := os.Getenv("RATE_WINDOW_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 1 {
			return nil, fmt.Errorf("RATE_WINDOW_MS must be a positive integer, got %q", raw)
		}
		cfg.RateWindow = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
