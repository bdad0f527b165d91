// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package dashboard

import (
	"github.com/tomtom215/covidtracker/internal/models"
	"github.com/tomtom215/covidtracker/internal/stats"
)

// StatCard is one of the three headline cards.
type StatCard struct {
	StatType models.StatType `json:"stat_type"`
	Title    string          `json:"title"`
	Today    string          `json:"today"`
	Total    string          `json:"total"`
	Active   bool            `json:"active"`
	// Red is true for cases and deaths; recovered is shown in green.
	Red bool `json:"red"`
}

// CountryOption is an entry of the country dropdown.
type CountryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TableRow is one line of the live cases table.
type TableRow struct {
	Name    string `json:"name"`
	ISOCode string `json:"iso_code,omitempty"`
	Flag    string `json:"flag,omitempty"`
	Cases   string `json:"cases"`
}

// Graph is the worldwide line graph.
type Graph struct {
	Title  string             `json:"title"`
	Color  string             `json:"color"`
	Points []stats.ChartPoint `json:"points"`
}

// MapView positions the map and lists its circles.
type MapView struct {
	Center  models.LatLng     `json:"center"`
	Zoom    int               `json:"zoom"`
	Markers []stats.MapMarker `json:"markers"`
}

// ViewModel is the rendered dashboard sent to browsers.
type ViewModel struct {
	SessionID       string          `json:"session_id"`
	Version         uint64          `json:"version"`
	SelectedCountry string          `json:"selected_country"`
	StatType        models.StatType `json:"stat_type"`
	Title           string          `json:"title"`
	Cards           []StatCard      `json:"cards"`
	Countries       []CountryOption `json:"countries"`
	Table           []TableRow      `json:"table"`
	Map             MapView         `json:"map"`
	Graph           Graph           `json:"graph"`
	Banner          *Banner         `json:"banner,omitempty"`
	Loading         Loading         `json:"loading"`
}

var cardTitles = map[models.StatType]string{
	models.StatCases:     "Coronavirus Cases",
	models.StatRecovered: "Recovered",
	models.StatDeaths:    "Deaths",
}

// Render derives the view model from state. It has no side effects.
func Render(sessionID string, state ViewState, f *stats.Formatter) ViewModel {
	if f == nil {
		f = stats.DefaultFormatter()
	}

	vm := ViewModel{
		SessionID:       sessionID,
		Version:         state.Version,
		SelectedCountry: state.SelectedCountry,
		StatType:        state.StatType,
		Title:           "COVID-19 Tracker",
		Cards:           renderCards(state, f),
		Countries:       renderOptions(state.MapMarkers),
		Table:           renderTable(state.TableRows, f),
		Map: MapView{
			Center:  state.MapCenter,
			Zoom:    state.MapZoom,
			Markers: stats.Markers(state.MapMarkers, state.StatType),
		},
		Graph: Graph{
			Title:  "Worldwide new " + string(state.StatType),
			Color:  stats.StyleFor(state.StatType).Color,
			Points: stats.DailySeries(state.Timeline, state.StatType),
		},
		Banner:  state.Banner,
		Loading: state.Loading,
	}
	return vm
}

func renderCards(state ViewState, f *stats.Formatter) []StatCard {
	cards := make([]StatCard, 0, len(models.StatTypes))
	for _, t := range models.StatTypes {
		card := StatCard{
			StatType: t,
			Title:    cardTitles[t],
			Today:    f.Delta(nil),
			Total:    f.Count(nil),
			Active:   t == state.StatType,
			Red:      t != models.StatRecovered,
		}
		if state.ActiveLoaded {
			card.Today = f.Delta(stats.Int64(state.ActiveStat.Today(t)))
			card.Total = f.Count(stats.Int64(state.ActiveStat.Total(t)))
		}
		cards = append(cards, card)
	}
	return cards
}

// renderOptions lists countries with a code, "Worldwide" first.
func renderOptions(countries []models.CountryStat) []CountryOption {
	opts := make([]CountryOption, 0, len(countries)+1)
	opts = append(opts, CountryOption{Value: Worldwide, Label: "Worldwide"})
	for i := range countries {
		if countries[i].ISOCode == "" {
			continue
		}
		opts = append(opts, CountryOption{Value: countries[i].ISOCode, Label: countries[i].Name})
	}
	return opts
}

func renderTable(rows []models.CountryStat, f *stats.Formatter) []TableRow {
	out := make([]TableRow, len(rows))
	for i := range rows {
		out[i] = TableRow{
			Name:    rows[i].Name,
			ISOCode: rows[i].ISOCode,
			Flag:    rows[i].Flag,
			Cases:   f.Count(stats.Int64(rows[i].Cases)),
		}
	}
	return out
}
