// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/covidtracker/internal/config"
	"github.com/tomtom215/covidtracker/internal/dashboard"
	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/stats"
	ws "github.com/tomtom215/covidtracker/internal/websocket"
)

// UpstreamStatus reports the circuit breaker state of the statistics
// client: "closed", "half-open" or "open".
type UpstreamStatus interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrader
//   - handlers_helpers.go: response envelope and body decoding
//   - handlers_dashboard.go: page, session and selection endpoints
//   - handlers_health.go: health probes
type Handler struct {
	registry  *dashboard.Registry
	wsHub     *ws.Hub
	formatter *stats.Formatter
	config    *config.Config
	upstream  UpstreamStatus // optional
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// upstream may be nil when the circuit breaker is disabled; readiness then
// does not depend on the upstream API.
func NewHandler(registry *dashboard.Registry, wsHub *ws.Hub, formatter *stats.Formatter, cfg *config.Config, upstream UpstreamStatus) *Handler {
	if formatter == nil {
		formatter = stats.DefaultFormatter()
	}
	return &Handler{
		registry:  registry,
		wsHub:     wsHub,
		formatter: formatter,
		config:    cfg,
		upstream:  upstream,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins.
// Same-origin requests are always accepted; cross-origin ones must match
// the configured CORS origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin on WebSocket handshakes.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
