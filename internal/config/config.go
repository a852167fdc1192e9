// Package config loads ght-core settings from the environment and the
// optional tracks file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

// Store drivers
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Run modes
const (
	RunModeAPI   = "api"
	RunModeCheck = "check"
)

// Config holds every environment setting
type Config struct {
	RunMode string
	Host    string
	Port    int

	// Store
	StoreDriver       string
	ConcordancePath   string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration
	DBInitSchema      bool

	// Cache (optional)
	RedisURL string
	CacheTTL time.Duration

	// API auth (optional)
	APIJWTSecret        string
	APIClientID         string
	APIClientSecretHash string
	APITokenTTL         time.Duration

	LookupTimeout  time.Duration
	TracksFile     string
	AllowedOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration through getenv (os.Getenv in production)
func Load(getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	e := env{getenv: getenv}

	cfg := &Config{
		RunMode: e.getEnv("RUN_MODE", RunModeAPI),
		Host:    e.getEnv("HOST", "0.0.0.0"),
		Port:    e.getEnvInt("PORT", 3000),

		StoreDriver:       strings.ToLower(e.getEnv("STORE_DRIVER", StoreSQLite)),
		ConcordancePath:   e.getEnv("CONCORDANCE_PATH", "concordance.db"),
		DatabaseURL:       e.getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:    e.getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    e.getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: time.Duration(e.getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
		DBConnMaxIdleTime: time.Duration(e.getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		DBInitSchema:      e.getEnvBool("DB_INIT_SCHEMA", false),

		RedisURL: e.getEnv("REDIS_URL", ""),
		CacheTTL: time.Duration(e.getEnvInt("CACHE_TTL_SEC", 3600)) * time.Second,

		APIJWTSecret:        e.getEnv("API_JWT_SECRET", ""),
		APIClientID:         e.getEnv("API_CLIENT_ID", ""),
		APIClientSecretHash: e.getEnv("API_CLIENT_SECRET_HASH", ""),
		APITokenTTL:         time.Duration(e.getEnvInt("API_TOKEN_TTL_MIN", 1440)) * time.Minute,

		LookupTimeout:  time.Duration(e.getEnvInt("LOOKUP_TIMEOUT_MS", 5000)) * time.Millisecond,
		TracksFile:     e.getEnv("TRACKS_FILE", ""),
		AllowedOrigins: splitList(e.getEnv("CORS_ALLOWED_ORIGINS", "*")),

		LogLevel:  e.getEnv("LOG_LEVEL", "info"),
		LogFormat: e.getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.RunMode {
	case RunModeAPI, RunModeCheck:
	default:
		return fmt.Errorf("%w: RUN_MODE must be %s or %s, got %q", domain.ErrInvalidInput, RunModeAPI, RunModeCheck, c.RunMode)
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if c.ConcordancePath == "" {
			return fmt.Errorf("%w: CONCORDANCE_PATH is required for the sqlite store", domain.ErrInvalidInput)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres store", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: STORE_DRIVER must be %s or %s, got %q", domain.ErrInvalidInput, StoreSQLite, StorePostgres, c.StoreDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT out of range: %d", domain.ErrInvalidInput, c.Port)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("%w: LOOKUP_TIMEOUT_MS must be positive", domain.ErrInvalidInput)
	}
	if c.APIClientID != "" && c.APIClientSecretHash == "" {
		return fmt.Errorf("%w: API_CLIENT_SECRET_HASH is required with API_CLIENT_ID", domain.ErrInvalidInput)
	}
	if c.APIClientID != "" && c.APIJWTSecret == "" {
		return fmt.Errorf("%w: API_JWT_SECRET is required with API_CLIENT_ID", domain.ErrInvalidInput)
	}
	return nil
}

// AuthEnabled reports whether bearer tokens guard the API
func (c *Config) AuthEnabled() bool {
	return c.APIJWTSecret != ""
}

// CacheEnabled reports whether a Redis range cache is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

type env struct {
	getenv func(string) string
}

func (e env) getEnv(key, defaultValue string) string {
	if value := e.getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (e env) getEnvInt(key string, defaultValue int) int {
	if value := e.getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func (e env) getEnvBool(key string, defaultValue bool) bool {
	if value := e.getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
