// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/covidtracker/internal/middleware"
)

// compressionLevel is the gzip level for pages, assets and JSON.
const compressionLevel = 5

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. chiMw may be nil for defaults.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMw}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	compress := chimiddleware.Compress(compressionLevel)

	// ========================
	// Page and Static Assets
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(PageSecurityHeaders())
		r.Use(compress)

		r.With(router.chiMiddleware.RateLimitSession()).Get("/", router.handler.Index)
		r.Handle("/static/*", staticHandler())
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Dashboard Endpoints
	// ========================
	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.With(router.chiMiddleware.RateLimitSession()).Post("/", router.handler.CreateSession)

		r.Route("/{session}", func(r chi.Router) {
			r.With(compress).Get("/state", router.handler.DashboardState)

			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitIntent())
				r.Post("/country", router.handler.SelectCountry)
				r.Post("/stat-type", router.handler.SelectStatType)
			})

			// No compression: the upgrade hijacks the connection.
			r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", router.handler.WebSocket)
		})
	})

	// ========================
	// Prometheus
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	return r
}

// notFound answers API paths with the JSON envelope and everything else
// with plain text.
func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Endpoint not found", nil)
		return
	}
	http.NotFound(w, r)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
