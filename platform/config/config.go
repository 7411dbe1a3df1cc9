// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

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

// RedisConfig provides settings for the optional Redis cache/queue instance.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq worker process.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetCacheWarmInterval() time.Duration
}

// GeocodeConfig provides settings for the geocoding collaborator.
type GeocodeConfig interface {
	GetGeocodeBaseURL() string
	GetGeocodeTimeout() time.Duration
	GetGeocodeCountryCodes() string
	GetGeocodeUserAgent() string
}

// SearchConfig provides settings for the listings search engine.
type SearchConfig interface {
	GetSearchRadiusKM() float64
	GetListCacheTTL() time.Duration
	GetListCacheCap() int
}

// RateLimitConfig provides settings for the fixed-window request limiter.
type RateLimitConfig interface {
	GetRateWindow() time.Duration
	GetRateReadCeiling() int
	GetRateWriteCeiling() int
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
	RedisURL          string
	RedisTLSInsecure  bool
	AsynqQueueName    string
	AsynqConcurrency  int
	CacheWarmInterval time.Duration
	GeocodeBaseURL    string
	GeocodeTimeout    time.Duration
	GeocodeCountries  string
	GeocodeUserAgent  string
	SearchRadiusKM    float64
	ListCacheTTL      time.Duration
	ListCacheCap      int
	RateWindow        time.Duration
	RateReadCeiling   int
	RateWriteCeiling  int
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

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string             { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int              { return c.AsynqConcurrency }
func (c *Config) GetCacheWarmInterval() time.Duration   { return c.CacheWarmInterval }

// GeocodeConfig implementation
func (c *Config) GetGeocodeBaseURL() string        { return c.GeocodeBaseURL }
func (c *Config) GetGeocodeTimeout() time.Duration { return c.GeocodeTimeout }
func (c *Config) GetGeocodeCountryCodes() string   { return c.GeocodeCountries }
func (c *Config) GetGeocodeUserAgent() string      { return c.GeocodeUserAgent }

// SearchConfig implementation
func (c *Config) GetSearchRadiusKM() float64      { return c.SearchRadiusKM }
func (c *Config) GetListCacheTTL() time.Duration  { return c.ListCacheTTL }
func (c *Config) GetListCacheCap() int            { return c.ListCacheCap }

// RateLimitConfig implementation
func (c *Config) GetRateWindow() time.Duration { return c.RateWindow }
func (c *Config) GetRateReadCeiling() int      { return c.RateReadCeiling }
func (c *Config) GetRateWriteCeiling() int     { return c.RateWriteCeiling }

// Load reads configuration from environment variables.
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
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisTLSInsecure:  strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		CacheWarmInterval: mustDuration(getEnv("CACHE_WARM_INTERVAL", "20s")),
		GeocodeBaseURL:    getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocodeTimeout:    mustDuration(getEnv("GEOCODE_TIMEOUT", "4s")),
		GeocodeCountries:  getEnv("GEOCODE_COUNTRY_CODES", "in"),
		GeocodeUserAgent:  getEnv("GEOCODE_USER_AGENT", "RentalPortal/1.0"),
		SearchRadiusKM:    mustFloat(getEnv("SEARCH_RADIUS_KM", "20")),
		ListCacheTTL:      mustDuration(getEnv("LIST_CACHE_TTL", "30s")),
		ListCacheCap:      mustInt(getEnv("LIST_CACHE_CAP", "50")),
		RateWindow:        mustDuration(getEnv("RATE_WINDOW", "1m")),
		RateReadCeiling:   mustInt(getEnv("RATE_READ_CEILING", "100")),
		RateWriteCeiling:  mustInt(getEnv("RATE_WRITE_CEILING", "20")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.GeocodeTimeout <= 0 {
		return nil, fmt.Errorf("GEOCODE_TIMEOUT must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
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
