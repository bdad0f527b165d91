// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package config loads and validates COVID Tracker configuration.
//
// Configuration is layered with Koanf v2. Later layers override earlier ones:
//
//  1. Built-in defaults (see defaultConfig)
//  2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
//     /etc/covidtracker/config.yaml
//  3. Environment variables, mapped explicitly in envTransformFunc
//
// Unmapped environment variables are ignored so unrelated process
// environment never leaks into the configuration.
//
// # Sections
//
//   - server: listen address, HTTP timeouts, environment name
//   - upstream: disease.sh base URL, request timeout, historical window
//   - dashboard: map defaults, number locale, session lifetime
//   - security: CORS origins and inbound API rate limiting
//   - logging: zerolog level, format, caller
//
// # Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	client := diseaseapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
package config
