// Package config loads server settings from the environment.
//
// Environment variables:
//
//	PORT             listen port (default: 8080)
//	DB_PATH          SQLite file (default: ./data/receipts.db)
//	JWT_SECRET       token signing key, required outside development
//	TOKEN_TTL        token lifetime, e.g. 24h (default: 24h)
//	LOG_LEVEL        debug, info, warn, error (default: info)
//	LOG_FORMAT       text or json (default: text)
//	APP_ENV          development or production (default: development)
//	METRICS_ENABLED  serve /metrics (default: true)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvDevelopment is the default APP_ENV.
const EnvDevelopment = "development"

// devSecret signs tokens when no JWT_SECRET is set in development.
const devSecret = "billsplit-dev-secret"

// ErrMissingSecret is returned when JWT_SECRET is unset outside development.
var ErrMissingSecret = errors.New("JWT_SECRET is required outside development")

// Config holds the server settings.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
	LogFormat      string
	Env            string
	MetricsEnabled bool
}

// Load reads a .env file from the working directory, if present, and then the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is skipped;
// an unreadable or malformed one is an error.
func LoadFrom(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		DBPath:    get("DB_PATH", "./data/receipts.db"),
		JWTSecret: getenv("JWT_SECRET"),
		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "text"),
		Env:       get("APP_ENV", EnvDevelopment),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %s: must be positive", ttl)
	}
	cfg.TokenTTL = ttl

	metricsEnabled, err := strconv.ParseBool(get("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}
	cfg.MetricsEnabled = metricsEnabled

	if cfg.JWTSecret == "" {
		if cfg.Env != EnvDevelopment {
			return nil, ErrMissingSecret
		}
		cfg.JWTSecret = devSecret
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
