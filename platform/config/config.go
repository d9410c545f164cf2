// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RegistryConfig provides settings for the capture endpoint registry.
type RegistryConfig interface {
	// GetRegistryPath returns the path to an external registry catalogue.
	// Empty means the embedded catalogue is used.
	GetRegistryPath() string
}

// AnalyticsConfig provides settings for the analytics query layer.
type AnalyticsConfig interface {
	GetTopListingsLimit() int
	GetTopCompaniesLimit() int
}

// IngestConfig provides settings for the public lead ingestion endpoint.
type IngestConfig interface {
	GetIngestRateLimit() float64
	GetIngestRateBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	DatabaseURL       string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	RegistryPath      string
	TopListingsLimit  int
	TopCompaniesLimit int
	IngestRateLimit   float64
	IngestRateBurst   int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RegistryConfig implementation
func (c *Config) GetRegistryPath() string { return c.RegistryPath }

// AnalyticsConfig implementation
func (c *Config) GetTopListingsLimit() int  { return c.TopListingsLimit }
func (c *Config) GetTopCompaniesLimit() int { return c.TopCompaniesLimit }

// IngestConfig implementation
func (c *Config) GetIngestRateLimit() float64 { return c.IngestRateLimit }
func (c *Config) GetIngestRateBurst() int     { return c.IngestRateBurst }

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RegistryPath:      getEnv("REGISTRY_PATH", ""),
		TopListingsLimit:  mustInt(getEnv("ANALYTICS_TOP_LISTINGS", "10"), 10),
		TopCompaniesLimit: mustInt(getEnv("ANALYTICS_TOP_COMPANIES", "10"), 10),
		IngestRateLimit:   mustFloat(getEnv("INGEST_RATE_LIMIT", "5"), 5),
		IngestRateBurst:   mustInt(getEnv("INGEST_RATE_BURST", "10"), 10),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.TopListingsLimit < 1 || cfg.TopCompaniesLimit < 1 {
		return nil, fmt.Errorf("analytics top-N limits must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string, fallback int) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return result
}

func mustFloat(value string, fallback float64) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
