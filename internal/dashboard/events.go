// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/covidtracker/internal/diseaseapi"
	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/metrics"
	"github.com/tomtom215/covidtracker/internal/models"
	"github.com/tomtom215/covidtracker/internal/stats"
)

// event is a change request processed by the controller loop. apply runs
// on the loop goroutine only.
type event interface {
	apply(ctx context.Context, c *Controller)
}

// selectCountryEvent starts a new selection generation.
type selectCountryEvent struct {
	code string // normalized
}

func (e selectCountryEvent) apply(ctx context.Context, c *Controller) {
	c.beginSelection(ctx, e.code)
}

// selectStatEvent switches the highlighted statistic. No fetch.
type selectStatEvent struct {
	stat models.StatType
}

func (e selectStatEvent) apply(_ context.Context, c *Controller) {
	c.update(func(s *ViewState) {
		s.StatType = e.stat
	})
}

// activeResultEvent carries the outcome of a global or country fetch.
type activeResultEvent struct {
	gen     uint64
	op      string
	code    string
	global  *models.GlobalStat
	country *models.CountryStat
	err     error
}

func (e activeResultEvent) apply(ctx context.Context, c *Controller) {
	log := logging.Ctx(ctx)

	if e.gen != c.gen {
		metrics.DashboardStaleResults.Inc()
		log.Debug().
			Str("operation", e.op).
			Str("country", e.code).
			Uint64("result_generation", e.gen).
			Uint64("current_generation", c.gen).
			Msg("Discarding stale selection result")
		return
	}

	if e.err != nil {
		c.recordFailure(ctx, e.op, e.err, func(s *ViewState) {
			s.Loading.Active = false
		})
		return
	}

	var active models.ActiveStat
	center := c.settings.DefaultCenter
	target := "worldwide"
	if e.country != nil {
		active = models.ActiveFromCountry(e.country)
		center = models.LatLng{Lat: e.country.Latitude, Lng: e.country.Longitude}
		target = "country"
	} else {
		active = models.ActiveFromGlobal(e.global)
	}

	c.update(func(s *ViewState) {
		s.SelectedCountry = e.code
		s.ActiveStat = active
		s.ActiveLoaded = true
		s.MapCenter = center
		s.MapZoom = c.settings.MapZoom
		s.Loading.Active = false
		if s.Banner != nil && (s.Banner.Operation == OpGlobal || s.Banner.Operation == OpCountry) {
			s.Banner = nil
		}
	})
	metrics.RecordSelection(target)

	log.Debug().
		Str("country", e.code).
		Float64("lat", center.Lat).
		Float64("lng", center.Lng).
		Msg("Selection applied")
}

// countriesResultEvent carries the country list for the table and map.
type countriesResultEvent struct {
	countries []models.CountryStat
	err       error
}

func (e countriesResultEvent) apply(ctx context.Context, c *Controller) {
	if e.err != nil {
		c.recordFailure(ctx, OpCountries, e.err, func(s *ViewState) {
			s.Loading.Countries = false
		})
		return
	}

	rows := stats.SortByCasesDescending(e.countries)
	markers := slices.Clone(e.countries)
	if markers == nil {
		markers = []models.CountryStat{}
	}

	c.update(func(s *ViewState) {
		s.TableRows = rows
		s.MapMarkers = markers
		s.Loading.Countries = false
		if s.Banner != nil && s.Banner.Operation == OpCountries {
			s.Banner = nil
		}
	})
	logging.Ctx(ctx).Debug().Int("countries", len(rows)).Msg("Country list loaded")
}

// historicalResultEvent carries the worldwide timeline for the graph.
type historicalResultEvent struct {
	timeline *models.HistoricalTimeline
	err      error
}

func (e historicalResultEvent) apply(ctx context.Context, c *Controller) {
	if e.err != nil {
		c.recordFailure(ctx, OpHistorical, e.err, func(s *ViewState) {
			s.Loading.Historical = false
		})
		return
	}

	c.update(func(s *ViewState) {
		s.Timeline = e.timeline
		s.Loading.Historical = false
		if s.Banner != nil && s.Banner.Operation == OpHistorical {
			s.Banner = nil
		}
	})
}

// recordFailure sets the banner and leaves everything else except the
// loading flags cleared by clear.
func (c *Controller) recordFailure(ctx context.Context, op string, err error, clear func(*ViewState)) {
	kind := diseaseapi.KindOf(err)
	metrics.RecordFetchError(op, kind)

	logging.Ctx(ctx).Warn().
		Err(err).
		Str("operation", op).
		Str("kind", kind).
		Msg("Dashboard fetch failed")

	banner := &Banner{
		Operation: op,
		Kind:      kind,
		Message:   bannerMessage(op, kind),
		At:        time.Now(),
	}
	c.update(func(s *ViewState) {
		clear(s)
		s.Banner = banner
	})
}

func bannerMessage(op, kind string) string {
	var what string
	switch op {
	case OpGlobal:
		what = "worldwide statistics"
	case OpCountry:
		what = "country statistics"
	case OpCountries:
		what = "the country list"
	case OpHistorical:
		what = "the historical timeline"
	default:
		what = op
	}

	switch kind {
	case "network":
		return fmt.Sprintf("Could not load %s: the statistics service is unreachable.", what)
	case "parse":
		return fmt.Sprintf("Could not load %s: the statistics service returned an unexpected response.", what)
	default:
		return fmt.Sprintf("Could not load %s.", what)
	}
}
