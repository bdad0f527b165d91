// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/covidtracker/internal/dashboard"
)

// Error codes returned in the response envelope.
const (
	ErrCodeSessionNotFound    = "SESSION_NOT_FOUND"
	ErrCodeSessionClosed      = "SESSION_CLOSED"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// respondDashboardError maps controller and registry errors to responses.
func respondDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dashboard.ErrSessionNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeSessionNotFound, "Dashboard session not found", nil)
	case errors.Is(err, dashboard.ErrClosed):
		respondError(w, r, http.StatusGone, ErrCodeSessionClosed, "Dashboard session has ended", nil)
	case errors.Is(err, dashboard.ErrInvalidSelection), errors.Is(err, dashboard.ErrInvalidStatType):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}
