package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port string

	// Activities server
	ActivitiesAPIURL  string
	ActivitiesTimeout time.Duration // zero means no client timeout

	// Page behaviour
	MessageHideDelay     time.Duration
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration

	// Form protection
	CSRFKey      []byte
	CookieSecure bool

	LogLevel    string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		ActivitiesAPIURL:     strings.TrimRight(getEnv("ACTIVITIES_API_URL", "http://localhost:8000"), "/"),
		ActivitiesTimeout:    getDurationEnv("ACTIVITIES_TIMEOUT", 0),
		MessageHideDelay:     getDurationEnv("MESSAGE_HIDE_DELAY", 5*time.Second),
		SessionIdleTTL:       getDurationEnv("SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL", time.Minute),
		CookieSecure:         getBoolEnv("COOKIE_SECURE", false),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Environment:          getEnv("ENVIRONMENT", "production"),
	}

	key, err := loadCSRFKey(os.Getenv("CSRF_KEY"), cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	cfg.CSRFKey = key

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate checks values that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.ActivitiesAPIURL == "" {
		return fmt.Errorf("ACTIVITIES_API_URL is required")
	}
	if c.MessageHideDelay <= 0 {
		return fmt.Errorf("MESSAGE_HIDE_DELAY must be positive")
	}
	if c.SessionIdleTTL <= 0 || c.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.ActivitiesTimeout < 0 {
		return fmt.Errorf("ACTIVITIES_TIMEOUT must not be negative")
	}
	if len(c.CSRFKey) != 32 {
		return fmt.Errorf("CSRF key must be 32 bytes")
	}
	return nil
}

// loadCSRFKey decodes a hex key. Outside production an empty value yields a random key.
func loadCSRFKey(keyHex string, production bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key, nil
	}
	if production {
		return nil, fmt.Errorf("CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate CSRF key: %w", err)
	}
	return key, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getDurationEnv accepts Go durations ("5s") or plain seconds ("5")
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
