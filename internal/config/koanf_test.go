// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolateConfig points CONFIG_PATH at a missing file and moves into an
// empty directory so no stray config.yaml is picked up.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Chdir(t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Upstream.BaseURL != "https://disease.sh/v3/covid-19" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.HistoricalDays != 120 {
		t.Errorf("Upstream.HistoricalDays = %d, want 120", cfg.Upstream.HistoricalDays)
	}
	if cfg.Dashboard.MapZoom != 3 {
		t.Errorf("Dashboard.MapZoom = %d, want 3", cfg.Dashboard.MapZoom)
	}
	if cfg.Dashboard.DefaultLatitude != 34.80746 || cfg.Dashboard.DefaultLongitude != -40.4796 {
		t.Errorf("default center = (%v, %v), want (34.80746, -40.4796)",
			cfg.Dashboard.DefaultLatitude, cfg.Dashboard.DefaultLongitude)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Dashboard.SessionIdleTimeout != 30*time.Minute {
		t.Errorf("SessionIdleTimeout = %v, want 30m", cfg.Dashboard.SessionIdleTimeout)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DISEASE_API_URL", "http://localhost:9999/v3/covid-19")
	t.Setenv("DISEASE_API_TIMEOUT", "5s")
	t.Setenv("MAP_ZOOM", "4")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "http://localhost:9999/v3/covid-19" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 5s", cfg.Upstream.Timeout)
	}
	if cfg.Dashboard.MapZoom != 4 {
		t.Errorf("Dashboard.MapZoom = %d, want 4", cfg.Dashboard.MapZoom)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
dashboard:
  locale: de-DE
  max_sessions: 10
security:
  cors_origins:
    - https://dash.example
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Dashboard.Locale != "de-DE" {
		t.Errorf("Dashboard.Locale = %q, want de-DE", cfg.Dashboard.Locale)
	}
	if cfg.Dashboard.MaxSessions != 10 {
		t.Errorf("Dashboard.MaxSessions = %d, want 10", cfg.Dashboard.MaxSessions)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://dash.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_InvalidValueFails(t *testing.T) {
	isolateConfig(t)
	t.Setenv("DISEASE_API_URL", "ftp://disease.sh")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for ftp scheme")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"HTTP_PORT":            "server.port",
		"disease_api_url":      "upstream.base_url",
		"SESSION_IDLE_TIMEOUT": "dashboard.session_idle_timeout",
		"PATH":                 "",
		"HOME":                 "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
