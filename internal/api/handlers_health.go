// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/covidtracker/internal/models"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/covidtracker/internal/api.Version=...".
var Version = "dev"

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status           string  `json:"status"` // healthy, degraded
	Version          string  `json:"version"`
	Uptime           float64 `json:"uptime_seconds"`
	Sessions         int     `json:"sessions"`
	WebSocketClients int     `json:"websocket_clients"`
	UpstreamBreaker  string  `json:"upstream_breaker,omitempty"`
}

func (h *Handler) breakerState() string {
	if h.upstream == nil {
		return ""
	}
	return h.upstream.State()
}

// Health reports overall status. The service is degraded while the
// upstream circuit breaker is open; the dashboard still loads and shows
// error banners.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	breaker := h.breakerState()
	status := "healthy"
	if breaker == "open" {
		status = "degraded"
	}

	health := HealthStatus{
		Status:          status,
		Version:         Version,
		Uptime:          time.Since(h.startTime).Seconds(),
		UpstreamBreaker: breaker,
	}
	if h.registry != nil {
		health.Sessions = h.registry.Len()
	}
	if h.wsHub != nil {
		health.WebSocketClients = h.wsHub.GetClientCount()
	}

	respondSuccess(w, r, http.StatusOK, health)
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 while the upstream circuit breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	breaker := h.breakerState()
	ready := breaker != "open"

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"ready_to_serve":   ready,
			"upstream_breaker": breaker,
			"uptime":           time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r),
	})
}
