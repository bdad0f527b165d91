// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"time"

	"github.com/tomtom215/covidtracker/internal/models"
	"github.com/tomtom215/covidtracker/internal/validation"
)

// Worldwide is the selection value for the global aggregate.
const Worldwide = validation.WorldwideSelection

// Fetch operations, used in banners, logs and metric labels.
const (
	OpGlobal     = "global"
	OpCountries  = "countries"
	OpCountry    = "country"
	OpHistorical = "historical"
)

// Banner is the most recent fetch failure shown to the user. It never
// blocks the rest of the dashboard.
type Banner struct {
	Operation string    `json:"operation"`
	Kind      string    `json:"kind"` // network, parse, unknown
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Loading tracks outstanding requests.
type Loading struct {
	Active     bool `json:"active"`
	Countries  bool `json:"countries"`
	Historical bool `json:"historical"`
}

// ViewState is everything the dashboard renders.
type ViewState struct {
	// SelectedCountry is Worldwide or an upper-case ISO code.
	SelectedCountry string
	// ActiveStat feeds the cards; ActiveLoaded is false until the first
	// successful global or country fetch.
	ActiveStat   models.ActiveStat
	ActiveLoaded bool
	// TableRows is sorted by cases descending; MapMarkers keeps API order.
	TableRows  []models.CountryStat
	MapMarkers []models.CountryStat
	Timeline   *models.HistoricalTimeline
	MapCenter  models.LatLng
	MapZoom    int
	StatType   models.StatType
	Banner     *Banner
	Loading    Loading
	// Generation is the current selection generation.
	Generation uint64
	// Version increases with every applied change.
	Version uint64
}

// Settings are per-controller constants.
type Settings struct {
	DefaultCenter  models.LatLng
	MapZoom        int
	HistoricalDays int
}

// DefaultSettings returns the map defaults of the original dashboard.
func DefaultSettings() Settings {
	return Settings{
		DefaultCenter:  models.LatLng{Lat: 34.80746, Lng: -40.4796},
		MapZoom:        3,
		HistoricalDays: 120,
	}
}

func initialState(s Settings) ViewState {
	return ViewState{
		SelectedCountry: Worldwide,
		TableRows:       []models.CountryStat{},
		MapMarkers:      []models.CountryStat{},
		MapCenter:       s.DefaultCenter,
		MapZoom:         s.MapZoom,
		StatType:        models.StatCases,
		Loading:         Loading{Active: true, Countries: true, Historical: true},
	}
}
