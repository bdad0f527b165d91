// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"empty base url", func(c *Config) { c.Upstream.BaseURL = "" }, "DISEASE_API_URL is required"},
		{"base url with query", func(c *Config) { c.Upstream.BaseURL = "https://disease.sh/v3?x=1" }, "query parameters"},
		{"base url with version path", func(c *Config) { c.Upstream.BaseURL = "https://disease.sh/v3/covid-19/" }, ""},
		{"zero upstream timeout", func(c *Config) { c.Upstream.Timeout = 0 }, "DISEASE_API_TIMEOUT"},
		{"historical window", func(c *Config) { c.Upstream.HistoricalDays = 0 }, "HISTORICAL_DAYS"},
		{"zoom out of range", func(c *Config) { c.Dashboard.MapZoom = 25 }, "MAP_ZOOM"},
		{"latitude out of range", func(c *Config) { c.Dashboard.DefaultLatitude = 91 }, "MAP_DEFAULT_LAT"},
		{"bad locale", func(c *Config) { c.Dashboard.Locale = "not a tag!" }, "NUMBER_LOCALE"},
		{"idle timeout too short", func(c *Config) { c.Dashboard.SessionIdleTimeout = time.Second }, "SESSION_IDLE_TIMEOUT"},
		{"no sessions", func(c *Config) { c.Dashboard.MaxSessions = 0 }, "MAX_SESSIONS"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"rate limit window", func(c *Config) { c.Security.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 3000}
	if got := s.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q", got)
	}
}
