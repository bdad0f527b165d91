// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig holds settings for the disease.sh statistics API.
type UpstreamConfig struct {
	// BaseURL is the API root including the version path,
	// e.g. https://disease.sh/v3/covid-19
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single upstream request. There is no retry.
	Timeout time.Duration `koanf:"timeout"`

	// HistoricalDays is the lastdays window requested for the line graph.
	HistoricalDays int `koanf:"historical_days"`

	// CircuitBreaker toggles the fail-fast breaker around the client.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// DashboardConfig holds view defaults and session lifetime settings.
type DashboardConfig struct {
	// MapZoom is applied on every successful selection.
	MapZoom int `koanf:"map_zoom"`

	// DefaultLatitude and DefaultLongitude center the map for worldwide.
	DefaultLatitude  float64 `koanf:"default_latitude"`
	DefaultLongitude float64 `koanf:"default_longitude"`

	// Locale is a BCP 47 tag controlling thousands separators.
	Locale string `koanf:"locale"`

	// SessionIdleTimeout evicts dashboard sessions nobody has touched.
	SessionIdleTimeout time.Duration `koanf:"session_idle_timeout"`

	// MaxSessions caps live sessions; the least recently seen is evicted first.
	MaxSessions int `koanf:"max_sessions"`
}

// SecurityConfig holds CORS and inbound rate limiting for our own HTTP API.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, the optional config file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
