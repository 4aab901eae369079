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
	GetDatabaseConnectTimeout() time.Duration
	GetDatabaseMaxConns() int32
}

// EmailConfig provides settings for the SMTP transport.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetEmailHost() string
	GetEmailPort() int
	GetEmailUsername() string
	GetEmailPassword() string
	GetEmailSecure() bool
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetEmailSendTimeout() time.Duration
	IsProduction() bool
}

// NotificationConfig provides settings for enquiry notifications.
type NotificationConfig interface {
	GetAdminEmail() string
	GetAdminPortalURL() string
	GetEmailSendTimeout() time.Duration
}

// AdminConfig provides the static admin bearer secret.
type AdminConfig interface {
	GetAdminToken() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetEnv() string
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetTrustedProxies() []string
	GetStaticDir() string
	IsDevelopment() bool
}

// RateLimitConfig provides the global request budget per client IP.
type RateLimitConfig interface {
	GetRateLimitWindow() time.Duration
	GetRateLimitMax() int
}

// RedisConfig provides settings for the optional shared rate-limit store.
type RedisConfig interface {
	GetRedisURL() string
}

// MetricsConfig provides settings for the Prometheus endpoint.
type MetricsConfig interface {
	GetMetricsEnabled() bool
	GetMetricsUsername() string
	GetMetricsPassword() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	DatabaseConnectTimeout time.Duration
	DatabaseMaxConns       int32
	CORSAllowAll           bool
	CORSOrigins            []string
	TrustedProxies         []string
	StaticDir              string
	EmailEnabled           bool
	EmailHost              string
	EmailPort              int
	EmailUsername          string
	EmailPassword          string
	EmailSecure            bool
	EmailFromName          string
	EmailFromAddress       string
	EmailSendTimeout       time.Duration
	AdminEmail             string
	AdminPortalURL         string
	AdminToken             string
	RateLimitWindow        time.Duration
	RateLimitMax           int
	RedisURL               string
	MetricsEnabled         bool
	MetricsUsername        string
	MetricsPassword        string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string                   { return c.DatabaseURL }
func (c *Config) GetDatabaseConnectTimeout() time.Duration { return c.DatabaseConnectTimeout }
func (c *Config) GetDatabaseMaxConns() int32               { return c.DatabaseMaxConns }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool              { return c.EmailEnabled }
func (c *Config) GetEmailHost() string               { return c.EmailHost }
func (c *Config) GetEmailPort() int                  { return c.EmailPort }
func (c *Config) GetEmailUsername() string           { return c.EmailUsername }
func (c *Config) GetEmailPassword() string           { return c.EmailPassword }
func (c *Config) GetEmailSecure() bool               { return c.EmailSecure }
func (c *Config) GetEmailFromName() string           { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string        { return c.EmailFromAddress }
func (c *Config) GetEmailSendTimeout() time.Duration { return c.EmailSendTimeout }

// NotificationConfig implementation
func (c *Config) GetAdminEmail() string     { return c.AdminEmail }
func (c *Config) GetAdminPortalURL() string { return c.AdminPortalURL }

// AdminConfig implementation
func (c *Config) GetAdminToken() string { return c.AdminToken }

// HTTPConfig implementation
func (c *Config) GetEnv() string              { return c.Env }
func (c *Config) GetHTTPAddr() string         { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool       { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string    { return c.CORSOrigins }
func (c *Config) GetTrustedProxies() []string { return c.TrustedProxies }
func (c *Config) GetStaticDir() string        { return c.StaticDir }

// IsDevelopment reports whether internal error detail may be returned to clients.
func (c *Config) IsDevelopment() bool { return strings.EqualFold(c.Env, "development") }

// IsProduction reports whether the process runs with production guarantees.
func (c *Config) IsProduction() bool { return strings.EqualFold(c.Env, "production") }

// RateLimitConfig implementation
func (c *Config) GetRateLimitWindow() time.Duration { return c.RateLimitWindow }
func (c *Config) GetRateLimitMax() int              { return c.RateLimitMax }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// MetricsConfig implementation
func (c *Config) GetMetricsEnabled() bool    { return c.MetricsEnabled }
func (c *Config) GetMetricsUsername() string { return c.MetricsUsername }
func (c *Config) GetMetricsPassword() string { return c.MetricsPassword }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := containsWildcard(corsOrigins)

	httpAddr := getEnv("HTTP_ADDR", "")
	if httpAddr == "" {
		httpAddr = ":" + getEnv("PORT", "5000")
	}

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               httpAddr,
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		DatabaseConnectTimeout: mustDuration(getEnv("DATABASE_CONNECT_TIMEOUT", "5s")),
		DatabaseMaxConns:       int32(mustInt(getEnv("DATABASE_MAX_CONNS", "25"))),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		TrustedProxies:         splitCSV(getEnv("TRUSTED_PROXIES", "")),
		StaticDir:              getEnv("STATIC_DIR", ""),
		EmailEnabled:           emailEnabled,
		EmailHost:              getEnv("EMAIL_HOST", ""),
		EmailPort:              mustInt(getEnv("EMAIL_PORT", "587")),
		EmailUsername:          getEnv("EMAIL_USER", ""),
		EmailPassword:          getEnv("EMAIL_PASS", ""),
		EmailSecure:            strings.EqualFold(getEnv("EMAIL_SECURE", "false"), "true"),
		EmailFromName:          getEnv("EMAIL_FROM_NAME", "SABI Enquiries"),
		EmailFromAddress:       getEnv("EMAIL_FROM", ""),
		EmailSendTimeout:       mustDuration(getEnv("EMAIL_SEND_TIMEOUT", "10s")),
		AdminEmail:             getEnv("ADMIN_EMAIL", ""),
		AdminPortalURL:         strings.TrimRight(getEnv("ADMIN_PORTAL_URL", "http://localhost:5000/admin"), "/"),
		AdminToken:             getEnv("ADMIN_TOKEN", ""),
		RateLimitWindow:        mustDuration(getEnv("RATE_LIMIT_WINDOW", "15m")),
		RateLimitMax:           mustInt(getEnv("RATE_LIMIT_MAX", "100")),
		RedisURL:               getEnv("REDIS_URL", ""),
		MetricsEnabled:         strings.EqualFold(getEnv("METRICS_ENABLED", "false"), "true"),
		MetricsUsername:        getEnv("METRICS_USERNAME", ""),
		MetricsPassword:        getEnv("METRICS_PASSWORD", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AdminToken == "" {
		return fmt.Errorf("ADMIN_TOKEN is required")
	}
	if c.EmailEnabled {
		if c.EmailHost == "" {
			return fmt.Errorf("EMAIL_HOST is required when EMAIL_ENABLED is true")
		}
		if c.EmailFromAddress == "" {
			return fmt.Errorf("EMAIL_FROM is required when EMAIL_ENABLED is true")
		}
		if c.AdminEmail == "" {
			return fmt.Errorf("ADMIN_EMAIL is required when EMAIL_ENABLED is true")
		}
	}
	if c.EmailSendTimeout <= 0 {
		return fmt.Errorf("EMAIL_SEND_TIMEOUT must be a positive duration")
	}
	if c.RateLimitWindow < time.Millisecond {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1ms")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	if c.DatabaseMaxConns <= 0 {
		return fmt.Errorf("DATABASE_MAX_CONNS must be positive")
	}
	return nil
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
