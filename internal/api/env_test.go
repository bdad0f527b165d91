// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/covidtracker/internal/config"
	"github.com/tomtom215/covidtracker/internal/dashboard"
	"github.com/tomtom215/covidtracker/internal/diseaseapi"
	"github.com/tomtom215/covidtracker/internal/models"
	ws "github.com/tomtom215/covidtracker/internal/websocket"
)

const testOrigin = "https://dashboard.example.com"

// stubFetcher serves a fixed two-country world.
type stubFetcher struct{}

var (
	france  = models.CountryStat{Name: "France", ISOCode: "FR", Counts: models.Counts{Cases: 2000, TodayCases: 20, Recovered: 1500, Deaths: 50}, Latitude: 46, Longitude: 2}
	germany = models.CountryStat{Name: "Germany", ISOCode: "DE", Counts: models.Counts{Cases: 1000, TodayCases: 10}, Latitude: 51, Longitude: 9}
)

func (stubFetcher) FetchGlobal(ctx context.Context) (*models.GlobalStat, error) {
	return &models.GlobalStat{Counts: models.Counts{Cases: 3000, TodayCases: 30, Recovered: 2000, Deaths: 60}}, nil
}

func (stubFetcher) FetchCountries(ctx context.Context) ([]models.CountryStat, error) {
	return []models.CountryStat{germany, france}, nil
}

func (stubFetcher) FetchCountry(ctx context.Context, iso string) (*models.CountryStat, error) {
	switch iso {
	case "FR":
		c := france
		return &c, nil
	case "DE":
		c := germany
		return &c, nil
	}
	return nil, &diseaseapi.FetchError{Op: "country", StatusCode: http.StatusNotFound, Kind: diseaseapi.ErrParse, Err: errors.New("country not found")}
}

func (stubFetcher) FetchHistorical(ctx context.Context, _ int) (*models.HistoricalTimeline, error) {
	return &models.HistoricalTimeline{
		Cases:     map[string]int64{"1/1/21": 100, "1/2/21": 150},
		Deaths:    map[string]int64{"1/1/21": 1, "1/2/21": 3},
		Recovered: map[string]int64{"1/1/21": 10, "1/2/21": 20},
	}, nil
}

type stubBreaker string

func (s stubBreaker) State() string { return string(s) }

type testEnv struct {
	handler  *Handler
	router   http.Handler
	registry *dashboard.Registry
	hub      *ws.Hub
}

// newTestEnv wires a registry, running hub and router with rate limiting
// disabled. upstream may be nil.
func newTestEnv(t *testing.T, upstream UpstreamStatus) *testEnv {
	t.Helper()
	return newTestEnvWithRegistry(t, upstream, nil)
}

// newTestEnvWithRegistry is newTestEnv with a hook to adjust the registry
// configuration.
func newTestEnvWithRegistry(t *testing.T, upstream UpstreamStatus, configure func(*dashboard.RegistryConfig)) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Security.CORSOrigins = []string{testOrigin}

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub()
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		_ = hub.RunWithContext(ctx)
	}()

	rc := dashboard.RegistryConfig{
		Settings: dashboard.DefaultSettings(),
		OnEvict:  func(id, _ string) { hub.CloseSession(id) },
	}
	if configure != nil {
		configure(&rc)
	}
	registry := dashboard.NewRegistry(stubFetcher{}, NewHubNotifier(hub, nil), rc)
	registryDone := make(chan struct{})
	go func() {
		defer close(registryDone)
		_ = registry.Serve(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		for _, done := range []chan struct{}{registryDone, hubDone} {
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Error("background service did not stop")
			}
		}
	})

	h := NewHandler(registry, hub, nil, cfg, upstream)
	chiMw := NewChiMiddlewareFromSecurity(cfg.Security.CORSOrigins, 100, time.Minute, true)
	return &testEnv{
		handler:  h,
		router:   NewRouter(h, chiMw).SetupChi(),
		registry: registry,
		hub:      hub,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with a raw payload.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) dashboard.ViewModel {
	t.Helper()
	env := decodeEnvelope(t, rec)
	var vm dashboard.ViewModel
	if err := json.Unmarshal(env.Data, &vm); err != nil {
		t.Fatalf("decode view model: %v", err)
	}
	return vm
}

// createSession starts a session through the API and returns its ID.
func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/dashboard", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d, body %s", rec.Code, rec.Body.String())
	}
	return decodeView(t, rec).SessionID
}

// waitForView polls the state endpoint until cond holds.
func (e *testEnv) waitForView(t *testing.T, sessionID string, cond func(dashboard.ViewModel) bool) dashboard.ViewModel {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	var vm dashboard.ViewModel
	for time.Now().Before(deadline) {
		rec := e.do(t, http.MethodGet, "/api/v1/dashboard/"+sessionID+"/state", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("state: status %d, body %s", rec.Code, rec.Body.String())
		}
		vm = decodeView(t, rec)
		if cond(vm) {
			return vm
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met; last view: %+v", vm)
	return vm
}

func loadedView(vm dashboard.ViewModel) bool {
	return !vm.Loading.Active && !vm.Loading.Countries && !vm.Loading.Historical
}
