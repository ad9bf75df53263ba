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
	"golang.org/x/text/language"
)

const fallbackRegion = "US"

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides settings for the per-IP rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// PhoneConfig provides settings for the phone input controller and the
// country directory.
type PhoneConfig interface {
	GetDefaultRegion() string
	GetDisplayLocale() language.Tag
	GetPhoneMaxDigits() int
	GetCountriesInclude() []string
	GetCountriesExclude() []string
	GetPlaceholderEnabled() bool
}

// SessionConfig provides settings for the phone input session store.
type SessionConfig interface {
	GetRedisURL() string
	GetSessionTTL() time.Duration
	IsRedisEnabled() bool
}

// MinIOConfig provides settings for MinIO S3-compatible flag storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketFlags() string
	GetFlagURLTTL() time.Duration
	IsMinIOEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	CORSAllowCreds     bool
	RateLimitRPS       float64
	RateLimitBurst     int
	DefaultRegion      string
	DisplayLocale      language.Tag
	PhoneMaxDigits     int
	CountriesInclude   []string
	CountriesExclude   []string
	PlaceholderEnabled bool
	RedisURL           string
	SessionTTL         time.Duration
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinioBucketFlags   string
	FlagURLTTL         time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// PhoneConfig implementation
func (c *Config) GetDefaultRegion() string       { return c.DefaultRegion }
func (c *Config) GetDisplayLocale() language.Tag { return c.DisplayLocale }
func (c *Config) GetPhoneMaxDigits() int         { return c.PhoneMaxDigits }
func (c *Config) GetCountriesInclude() []string  { return c.CountriesInclude }
func (c *Config) GetCountriesExclude() []string  { return c.CountriesExclude }
func (c *Config) GetPlaceholderEnabled() bool    { return c.PlaceholderEnabled }

// SessionConfig implementation
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }
func (c *Config) IsRedisEnabled() bool         { return c.RedisURL != "" }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string     { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string    { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string    { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool         { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketFlags() string  { return c.MinioBucketFlags }
func (c *Config) GetFlagURLTTL() time.Duration { return c.FlagURLTTL }
func (c *Config) IsMinIOEnabled() bool         { return c.MinIOEndpoint != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	displayLocale, err := language.Parse(getEnv("DISPLAY_LOCALE", "en"))
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_LOCALE: %w", err)
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		CORSAllowCreds:     strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:       mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:     mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		DefaultRegion:      defaultRegion(),
		DisplayLocale:      displayLocale,
		PhoneMaxDigits:     mustInt(getEnv("PHONE_MAX_DIGITS", "14")),
		CountriesInclude:   upperAll(splitCSV(getEnv("COUNTRIES_INCLUDE", ""))),
		CountriesExclude:   upperAll(splitCSV(getEnv("COUNTRIES_EXCLUDE", ""))),
		PlaceholderEnabled: strings.EqualFold(getEnv("PHONE_PLACEHOLDER", "true"), "true"),
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionTTL:         mustDuration(getEnv("SESSION_TTL", "30m")),
		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketFlags:   getEnv("MINIO_BUCKET_FLAGS", "flags"),
		FlagURLTTL:         mustDuration(getEnv("FLAG_URL_TTL", "1h")),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if len(cfg.CountriesInclude) > 0 && len(cfg.CountriesExclude) > 0 {
		return nil, fmt.Errorf("COUNTRIES_INCLUDE and COUNTRIES_EXCLUDE are mutually exclusive")
	}
	if cfg.PhoneMaxDigits <= 0 {
		return nil, fmt.Errorf("PHONE_MAX_DIGITS must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.IsMinIOEnabled() && (cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	return cfg, nil
}

// defaultRegion resolves DEFAULT_REGION, then the region of the process
// locale (LC_ALL, then LANG), then US.
func defaultRegion() string {
	if region := strings.TrimSpace(getEnv("DEFAULT_REGION", "")); region != "" {
		return strings.ToUpper(region)
	}
	for _, key := range []string{"LC_ALL", "LANG"} {
		if region, ok := RegionFromLocale(getEnv(key, "")); ok {
			return region
		}
	}
	return fallbackRegion
}

// RegionFromLocale extracts the region of a POSIX locale such as
// "fr_FR.UTF-8". Locales without a region guess are rejected.
func RegionFromLocale(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	region, confidence := tag.Region()
	if confidence == language.No || !region.IsCountry() {
		return "", false
	}
	return region.String(), true
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
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
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

func upperAll(values []string) []string {
	for i, value := range values {
		values[i] = strings.ToUpper(value)
	}
	return values
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
