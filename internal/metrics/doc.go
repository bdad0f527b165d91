// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry through promauto at
// package init, so importing the package is enough to expose them.
//
// # Metric Families
//
//   - upstream_*: disease.sh request counts and latency per endpoint
//   - circuit_breaker_*: breaker state and transitions around the client
//   - api_*: inbound HTTP request counts, latency and in-flight requests
//   - dashboard_*: live sessions, selections, stale results, fetch errors
//   - websocket_*: push connections and message counts
package metrics
