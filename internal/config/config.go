// Package config provides centralized configuration management for the catalog admin.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	View     ViewConfig
	Session  SessionConfig
	Audit    AuditConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// CatalogConfig points at the remote product API.
type CatalogConfig struct {
	// BaseURL is the product collection endpoint
	BaseURL string `env:"CATALOG_API_URL" default:"https://api.escuelajs.co/api/v1/products"`

	// Timeout bounds a single remote call; 0 means no client-side timeout (default: 0s)
	Timeout time.Duration `env:"CATALOG_REQUEST_TIMEOUT" default:"0s"`

	// MaxConcurrent caps in-flight remote calls across all sessions (default: 8)
	MaxConcurrent int `env:"CATALOG_MAX_CONCURRENT" default:"8"`

	// MaxWait is how long a call waits for a free slot (default: 10s)
	MaxWait time.Duration `env:"CATALOG_MAX_WAIT" default:"10s"`
}

// ViewConfig holds table view defaults.
type ViewConfig struct {
	// DefaultPageSize is the page size of a new session (default: 5)
	DefaultPageSize int `env:"VIEW_DEFAULT_PAGE_SIZE" default:"5"`

	// PageSizeOptions are the choices offered in the page-size selector
	PageSizeOptions []int `env:"VIEW_PAGE_SIZE_OPTIONS" default:"5,10,20,50"`
}

// SessionConfig holds per-browser view session settings.
type SessionConfig struct {
	// CookieName names the session cookie (default: catalog_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"catalog_session"`

	// IdleTimeout drops sessions unused for this long (default: 2h)
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" default:"2h"`

	// SweepInterval is how often idle sessions are collected (default: 10m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"10m"`

	// SecureCookie sets the Secure attribute on the session cookie (default: false)
	SecureCookie bool `env:"SESSION_SECURE_COOKIE" default:"false"`
}

// AuditConfig holds the optional audit trail database settings.
type AuditConfig struct {
	// DatabaseURL is the PostgreSQL connection string; empty disables the audit trail
	// Supports both AUDIT_DATABASE_URL and DATABASE_URL env vars
	DatabaseURL string `env:"AUDIT_DATABASE_URL" envAlt:"DATABASE_URL"`

	// MaxConns is the maximum number of pooled connections (default: 4)
	MaxConns int `env:"AUDIT_MAX_CONNS" default:"4"`

	// RecentLimit is how many entries the audit page shows (default: 100)
	RecentLimit int `env:"AUDIT_RECENT_LIMIT" default:"100"`
}

// Enabled reports whether an audit database is configured.
func (c *AuditConfig) Enabled() bool {
	return c.DatabaseURL != ""
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// MutationLimit is requests per minute for create/update endpoints (default: 30)
	MutationLimit int `env:"RATE_LIMIT_MUTATIONS" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
