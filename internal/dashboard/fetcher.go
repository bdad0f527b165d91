// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"context"
	"errors"

	"github.com/tomtom215/covidtracker/internal/diseaseapi"
	"github.com/tomtom215/covidtracker/internal/models"
)

// Fetcher retrieves statistics. Implemented by diseaseapi.Client and
// diseaseapi.CircuitBreakerClient.
type Fetcher interface {
	FetchGlobal(ctx context.Context) (*models.GlobalStat, error)
	FetchCountries(ctx context.Context) ([]models.CountryStat, error)
	FetchCountry(ctx context.Context, iso string) (*models.CountryStat, error)
	FetchHistorical(ctx context.Context, lastDays int) (*models.HistoricalTimeline, error)
}

var (
	_ Fetcher = (*diseaseapi.Client)(nil)
	_ Fetcher = (*diseaseapi.CircuitBreakerClient)(nil)
)

// Notifier receives every state the controller publishes.
// Publish is called from the controller loop and must not block.
type Notifier interface {
	Publish(sessionID string, state ViewState)
}

var (
	// ErrClosed is returned when dispatching to a stopped controller.
	ErrClosed = errors.New("dashboard controller closed")

	// ErrInvalidSelection is returned for a selection that is neither
	// "worldwide" nor a two-letter country code.
	ErrInvalidSelection = errors.New("invalid country selection")

	// ErrInvalidStatType is returned for a stat type other than cases,
	// recovered or deaths.
	ErrInvalidStatType = errors.New("invalid stat type")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("dashboard controller already running")
)
