// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package logging provides the zerolog-backed structured logger used across
// the COVID Tracker server.
//
// A single global logger is configured once from the loaded configuration
// and then reached through package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("iso", "US").Msg("Country selected")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Upstream fetch failed")
//
// # Context Fields
//
// HTTP middleware stores a request ID in the request context and dashboard
// sessions store their session ID. [Ctx] adds both to every event logged
// through it, so a single dashboard interaction can be followed from the
// HTTP request through the controller loop to the upstream fetch.
//
// # Supervisor Integration
//
// The suture supervisor tree logs through log/slog. [NewSlogLogger] returns
// an slog.Logger whose handler forwards records to the zerolog backend so
// all output shares one format.
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json or console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
package logging
