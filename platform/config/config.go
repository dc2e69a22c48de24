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

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketCampgroundImages() string
	IsMinIOEnabled() bool
}

// GeocoderConfig provides settings for the address lookup service.
type GeocoderConfig interface {
	GetGeocoderBaseURL() string
	GetGeocoderCountryCodes() string
	GetGeocoderLimit() int
	GetGeocoderUserAgent() string
}

// ReadErrorPolicy controls how repository read failures on list/edit paths
// are reported to callers.
type ReadErrorPolicy string

const (
	// ReadErrorSurface returns the failure to the caller as an error response.
	ReadErrorSurface ReadErrorPolicy = "surface"
	// ReadErrorLenient logs the failure and renders an empty result instead.
	ReadErrorLenient ReadErrorPolicy = "lenient"
)

// CampgroundsConfig provides settings for the campgrounds module.
type CampgroundsConfig interface {
	GetReadErrorPolicy() ReadErrorPolicy
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                         string
	HTTPAddr                    string
	DatabaseURL                 string
	JWTAccessSecret             string
	AccessTokenTTL              time.Duration
	CORSAllowAll                bool
	CORSOrigins                 []string
	CORSAllowCreds              bool
	MinIOEndpoint               string
	MinIOAccessKey              string
	MinIOSecretKey              string
	MinIOUseSSL                 bool
	MinIOMaxFileSize            int64
	MinioBucketCampgroundImages string
	GeocoderBaseURL             string
	GeocoderCountryCodes        string
	GeocoderLimit               int
	GeocoderUserAgent           string
	ReadErrors                  ReadErrorPolicy
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketCampgroundImages() string {
	return c.MinioBucketCampgroundImages
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// GeocoderConfig implementation
func (c *Config) GetGeocoderBaseURL() string      { return c.GeocoderBaseURL }
func (c *Config) GetGeocoderCountryCodes() string { return c.GeocoderCountryCodes }
func (c *Config) GetGeocoderLimit() int           { return c.GeocoderLimit }
func (c *Config) GetGeocoderUserAgent() string    { return c.GeocoderUserAgent }

// CampgroundsConfig implementation
func (c *Config) GetReadErrorPolicy() ReadErrorPolicy { return c.ReadErrors }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                         getEnv("APP_ENV", "development"),
		HTTPAddr:                    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:                 getEnv("DATABASE_URL", ""),
		JWTAccessSecret:             getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:              mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		CORSAllowAll:                corsAllowAll,
		CORSOrigins:                 corsOrigins,
		CORSAllowCreds:              strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		MinIOEndpoint:               getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:              getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:              getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:                 strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:            mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketCampgroundImages: getEnv("MINIO_BUCKET_CAMPGROUND_IMAGES", "campground-images"),
		GeocoderBaseURL:             getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderCountryCodes:        getEnv("GEOCODER_COUNTRY_CODES", ""),
		GeocoderLimit:               mustInt(getEnv("GEOCODER_LIMIT", "5")),
		GeocoderUserAgent:           getEnv("GEOCODER_USER_AGENT", "CampgroundApp/1.0"),
		ReadErrors:                  parseReadErrorPolicy(getEnv("READ_ERROR_POLICY", "surface")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
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

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
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

func parseReadErrorPolicy(value string) ReadErrorPolicy {
	if strings.EqualFold(strings.TrimSpace(value), string(ReadErrorLenient)) {
		return ReadErrorLenient
	}
	return ReadErrorSurface
}
