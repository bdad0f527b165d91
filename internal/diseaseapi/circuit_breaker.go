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
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/metrics"
	"github.com/tomtom215/covidtracker/internal/models"
)

// BreakerName labels the breaker in metrics and logs.
const BreakerName = "disease-api"

// CircuitBreakerClient wraps Client with a fail-fast circuit breaker.
// It never retries: a rejected call returns an ErrNetwork FetchError at once.
//
// Only failures that say something about upstream health count toward
// tripping: transport errors and 5xx responses. Cancelled contexts (a user
// superseding their own selection) and 4xx lookups (unknown country) do not.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client.
// Breaker configuration:
//   - 3 probe requests allowed in half-open state
//   - counts reset every minute while closed
//   - 30 seconds open before probing again
//   - opens at >= 60% failures over at least 10 requests
func NewCircuitBreakerClient(client *Client) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(BreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: BreakerName}
}

// countsAsFailure reports whether err reflects upstream health.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrNetwork) {
		return true
	}
	return StatusCode(err) >= http.StatusInternalServerError
}

// execute runs fn through the breaker. Rejections are converted to
// ErrNetwork so callers see a single error taxonomy.
func (cbc *CircuitBreakerClient) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
		logging.Warn().Err(err).Str("op", op).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, networkError(op, cbc.client.baseURL, fmt.Errorf("upstream unavailable: %w", err))
	}

	if !countsAsFailure(err) {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "excluded").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(cbc.cb.Counts().ConsecutiveFailures))
	return nil, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// State returns the breaker state as "closed", "half-open" or "open".
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

// FetchGlobal retrieves the worldwide aggregate with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchGlobal(ctx context.Context) (*models.GlobalStat, error) {
	return castResult[*models.GlobalStat](cbc.execute("global", func() (interface{}, error) {
		return cbc.client.FetchGlobal(ctx)
	}))
}

// FetchCountries retrieves all countries with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchCountries(ctx context.Context) ([]models.CountryStat, error) {
	return castResult[[]models.CountryStat](cbc.execute("countries", func() (interface{}, error) {
		return cbc.client.FetchCountries(ctx)
	}))
}

// FetchCountry retrieves one country with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchCountry(ctx context.Context, iso string) (*models.CountryStat, error) {
	return castResult[*models.CountryStat](cbc.execute("country", func() (interface{}, error) {
		return cbc.client.FetchCountry(ctx, iso)
	}))
}

// FetchHistorical retrieves the worldwide timeline with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchHistorical(ctx context.Context, lastDays int) (*models.HistoricalTimeline, error) {
	return castResult[*models.HistoricalTimeline](cbc.execute("historical", func() (interface{}, error) {
		return cbc.client.FetchHistorical(ctx, lastDays)
	}))
}
