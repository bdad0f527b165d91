// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package diseaseapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func failing(status int) func() (interface{}, error) {
	return func() (interface{}, error) {
		return nil, parseError("global", "http://test", status, errors.New("boom"))
	}
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cbc := NewCircuitBreakerClient(NewClient("http://localhost:1", time.Second))

	if cbc.cb.State() != gobreaker.StateClosed {
		t.Fatalf("expected initial state closed, got %v", cbc.cb.State())
	}

	// 7 failures then 3 successes: 70% but ReadyToTrip only runs on failure.
	for i := 0; i < 10; i++ {
		if i < 7 {
			_, _ = cbc.execute("global", func() (interface{}, error) {
				return nil, networkError("global", "http://test", errors.New("connection refused"))
			})
			continue
		}
		_, _ = cbc.execute("global", func() (interface{}, error) { return "ok", nil })
	}
	_, _ = cbc.execute("global", failing(http.StatusServiceUnavailable))

	if cbc.cb.State() != gobreaker.StateOpen {
		t.Fatalf("expected open after 8/11 failures, got %v", cbc.cb.State())
	}
	if cbc.State() != "open" {
		t.Errorf("State() = %q", cbc.State())
	}

	_, err := cbc.execute("global", func() (interface{}, error) {
		t.Error("request must not run while open")
		return nil, nil
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("rejected call should be ErrNetwork, got %v", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("rejected call should wrap ErrOpenState, got %v", err)
	}
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	cbc := NewCircuitBreakerClient(NewClient("http://localhost:1", time.Second))

	for i := 0; i < 20; i++ {
		_, err := cbc.execute("country", failing(http.StatusNotFound))
		if !errors.Is(err, ErrParse) {
			t.Fatalf("expected the original parse error, got %v", err)
		}
	}
	for i := 0; i < 20; i++ {
		_, _ = cbc.execute("country", func() (interface{}, error) {
			return nil, networkError("country", "http://test", fmt.Errorf("request: %w", context.Canceled))
		})
	}

	if cbc.cb.State() != gobreaker.StateClosed {
		t.Fatalf("404s and cancellations must not open the breaker, got %v", cbc.cb.State())
	}
}

func TestCountsAsFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", networkError("x", "u", errors.New("dial")), true},
		{"cancelled", networkError("x", "u", context.Canceled), false},
		{"server error", parseError("x", "u", 500, errors.New("oops")), true},
		{"not found", parseError("x", "u", 404, errors.New("nope")), false},
		{"bad json", parseError("x", "u", 200, errors.New("eof")), false},
	}
	for _, tt := range tests {
		if got := countsAsFailure(tt.err); got != tt.want {
			t.Errorf("%s: countsAsFailure = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCircuitBreakerClient_PassesThrough(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer server.Close()

	cbc := NewCircuitBreakerClient(NewClient(server.URL, time.Second))
	countries, err := cbc.FetchCountries(context.Background())
	if err != nil {
		t.Fatalf("FetchCountries() error = %v", err)
	}
	if len(countries) != 3 {
		t.Errorf("len = %d, want 3", len(countries))
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one upstream call, got %d", calls.Load())
	}
}

func TestCastResult(t *testing.T) {
	t.Parallel()

	if _, err := castResult[string](42, nil); err == nil {
		t.Error("expected type mismatch error")
	}
	v, err := castResult[string]("ok", nil)
	if err != nil || v != "ok" {
		t.Errorf("castResult = %q, %v", v, err)
	}
}
