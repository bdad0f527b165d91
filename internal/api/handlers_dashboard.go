// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/covidtracker/internal/dashboard"
	"github.com/tomtom215/covidtracker/internal/logging"
	ws "github.com/tomtom215/covidtracker/internal/websocket"
)

// SelectCountryRequest is the body of POST .../country.
type SelectCountryRequest struct {
	Country string `json:"country" validate:"required,country_selection"`
}

// SelectStatTypeRequest is the body of POST .../stat-type.
type SelectStatTypeRequest struct {
	StatType string `json:"stat_type" validate:"required,oneof=cases recovered deaths"`
}

// SelectionAccepted is returned with 202 once an intent is queued.
type SelectionAccepted struct {
	SessionID string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	StatType  string `json:"stat_type,omitempty"`
}

// render builds the current view model of ctrl.
func (h *Handler) render(ctrl *dashboard.Controller) dashboard.ViewModel {
	return dashboard.Render(ctrl.ID(), ctrl.Snapshot(), h.formatter)
}

// controller resolves the {session} URL parameter. On failure it writes a
// 404 and returns nil.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) *dashboard.Controller {
	id := chi.URLParam(r, "session")
	if uuid.Validate(id) != nil {
		respondError(w, r, http.StatusNotFound, ErrCodeSessionNotFound, "Dashboard session not found", nil)
		return nil
	}
	ctrl, err := h.registry.Get(id)
	if err != nil {
		respondDashboardError(w, r, err)
		return nil
	}
	return ctrl
}

// Index serves the dashboard page. Every page load starts a new session,
// whose initial view is inlined into the HTML.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl := h.registry.Create()

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title: "COVID-19 Tracker",
		View:  h.render(ctrl),
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to render page", err)
		return
	}

	logging.Ctx(r.Context()).Debug().Str("session_id", ctrl.ID()).Msg("Dashboard page served")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Debug().Err(err).Msg("Failed to write page")
	}
}

// CreateSession starts a dashboard session for API clients and returns
// its initial view model.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctrl := h.registry.Create()
	w.Header().Set("Location", "/api/v1/dashboard/"+ctrl.ID()+"/state")
	respondSuccess(w, r, http.StatusCreated, h.render(ctrl))
}

// DashboardState returns the session's current view model.
func (h *Handler) DashboardState(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(w, r)
	if ctrl == nil {
		return
	}
	respondSuccess(w, r, http.StatusOK, h.render(ctrl))
}

// SelectCountry queues a worldwide or country selection.
func (h *Handler) SelectCountry(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(w, r)
	if ctrl == nil {
		return
	}

	var req SelectCountryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := ctrl.SelectCountry(r.Context(), req.Country); err != nil {
		respondDashboardError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("session_id", ctrl.ID()).
		Str("country", sanitizeLogValue(req.Country)).
		Msg("Country selection queued")

	respondSuccess(w, r, http.StatusAccepted, SelectionAccepted{
		SessionID: ctrl.ID(),
		Country:   req.Country,
	})
}

// SelectStatType switches the statistic shown on the map and graph.
func (h *Handler) SelectStatType(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(w, r)
	if ctrl == nil {
		return
	}

	var req SelectStatTypeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := ctrl.SelectStatType(r.Context(), req.StatType); err != nil {
		respondDashboardError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusAccepted, SelectionAccepted{
		SessionID: ctrl.ID(),
		StatType:  req.StatType,
	})
}

// WebSocket upgrades the connection and streams the session's state. The
// current view is sent first; every later change follows as it happens.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	ctrl := h.controller(w, r)
	if ctrl == nil {
		return
	}
	sessionID := ctrl.ID()

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn, sessionID, func() {
		h.registry.Touch(sessionID)
	})
	client.Send(ws.Message{Type: ws.MessageTypeState, Data: h.render(ctrl)})
	h.wsHub.Register <- client
	// A publish between the render above and registration never reached
	// this client. Resend through the hub, which now knows it; the page
	// ignores versions it has already seen.
	h.wsHub.BroadcastToSession(sessionID, ws.MessageTypeState, h.render(ctrl))
	client.Start()
}
