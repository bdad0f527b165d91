// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/covidtracker/internal/api"
	"github.com/tomtom215/covidtracker/internal/config"
	"github.com/tomtom215/covidtracker/internal/dashboard"
	"github.com/tomtom215/covidtracker/internal/diseaseapi"
	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/models"
	"github.com/tomtom215/covidtracker/internal/stats"
	"github.com/tomtom215/covidtracker/internal/supervisor"
	"github.com/tomtom215/covidtracker/internal/supervisor/services"
	ws "github.com/tomtom215/covidtracker/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("upstream", cfg.Upstream.BaseURL).
		Bool("circuit_breaker", cfg.Upstream.CircuitBreaker).
		Str("locale", cfg.Dashboard.Locale).
		Str("environment", cfg.Server.Environment).
		Msg("Starting COVID Tracker")

	formatter, err := stats.NewFormatter(cfg.Dashboard.Locale)
	if err != nil {
		logging.Fatal().Err(err).Str("locale", cfg.Dashboard.Locale).Msg("Invalid number locale")
	}

	fetcher, upstream := newFetcher(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.Timeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	wsHub := ws.NewHub()

	registry := dashboard.NewRegistry(fetcher, api.NewHubNotifier(wsHub, formatter), dashboard.RegistryConfig{
		Settings: dashboard.Settings{
			DefaultCenter: models.LatLng{
				Lat: cfg.Dashboard.DefaultLatitude,
				Lng: cfg.Dashboard.DefaultLongitude,
			},
			MapZoom:        cfg.Dashboard.MapZoom,
			HistoricalDays: cfg.Upstream.HistoricalDays,
		},
		IdleTimeout: cfg.Dashboard.SessionIdleTimeout,
		MaxSessions: cfg.Dashboard.MaxSessions,
		OnEvict: func(sessionID, reason string) {
			// Browsers on an evicted session get a close frame and reload.
			wsHub.CloseSession(sessionID)
			logging.Debug().Str("session_id", sessionID).Str("reason", reason).Msg("Dashboard session evicted")
		},
	})

	handler := api.NewHandler(registry, wsHub, formatter, cfg, upstream)
	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===
	tree.AddSessionService(registry)
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	// === START SUPERVISOR TREE ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	if err := tree.Wait(ctx, errCh); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}
	signal.Stop(sigCh)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newFetcher builds the statistics client. upstream is nil when the
// circuit breaker is disabled, so readiness ignores upstream health.
func newFetcher(cfg *config.Config) (dashboard.Fetcher, api.UpstreamStatus) {
	client := diseaseapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	if !cfg.Upstream.CircuitBreaker {
		return client, nil
	}
	cb := diseaseapi.NewCircuitBreakerClient(client)
	return cb, cb
}
