// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package models

import (
	"fmt"
	"strings"
	"time"
)

// StatType selects which count the dashboard highlights on cards, map and graph.
type StatType string

const (
	StatCases     StatType = "cases"
	StatRecovered StatType = "recovered"
	StatDeaths    StatType = "deaths"
)

// StatTypes lists the valid stat types in card display order.
var StatTypes = []StatType{StatCases, StatRecovered, StatDeaths}

// ParseStatType converts s to a StatType, rejecting unknown values.
func ParseStatType(s string) (StatType, error) {
	t := StatType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case StatCases, StatRecovered, StatDeaths:
		return t, nil
	default:
		return "", fmt.Errorf("unknown stat type %q (want cases, recovered or deaths)", s)
	}
}

// Counts holds the headline figures shared by global and per-country stats.
type Counts struct {
	Cases          int64 `json:"cases"`
	TodayCases     int64 `json:"today_cases"`
	Recovered      int64 `json:"recovered"`
	TodayRecovered int64 `json:"today_recovered"`
	Deaths         int64 `json:"deaths"`
	TodayDeaths    int64 `json:"today_deaths"`
	Active         int64 `json:"active"`
	Critical       int64 `json:"critical"`
}

// Total returns the cumulative count for t.
func (c Counts) Total(t StatType) int64 {
	switch t {
	case StatRecovered:
		return c.Recovered
	case StatDeaths:
		return c.Deaths
	default:
		return c.Cases
	}
}

// Today returns the count reported for the current day for t.
func (c Counts) Today(t StatType) int64 {
	switch t {
	case StatRecovered:
		return c.TodayRecovered
	case StatDeaths:
		return c.TodayDeaths
	default:
		return c.TodayCases
	}
}

// GlobalStat is the worldwide aggregate.
type GlobalStat struct {
	Counts
	AffectedCountries int       `json:"affected_countries"`
	Updated           time.Time `json:"updated"`
}

// CountryStat is one country's statistics with its map position.
// ISOCode is empty for entries the API has no code for (cruise ships).
type CountryStat struct {
	Name      string `json:"name"`
	ISOCode   string `json:"iso_code,omitempty"`
	Flag      string `json:"flag,omitempty"`
	Continent string `json:"continent,omitempty"`
	Counts
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Updated   time.Time `json:"updated"`
}

// ActiveStat is the selected statistic shown on the cards. Name, ISOCode
// and coordinates are set only for country selections.
type ActiveStat struct {
	Counts
	Name      string    `json:"name,omitempty"`
	ISOCode   string    `json:"iso_code,omitempty"`
	Latitude  float64   `json:"lat,omitempty"`
	Longitude float64   `json:"lng,omitempty"`
	Updated   time.Time `json:"updated"`
}

// IsCountry reports whether the stat describes a single country.
func (a ActiveStat) IsCountry() bool {
	return a.ISOCode != "" || a.Name != ""
}

// ActiveFromGlobal projects a worldwide aggregate into an ActiveStat.
func ActiveFromGlobal(g *GlobalStat) ActiveStat {
	return ActiveStat{Counts: g.Counts, Updated: g.Updated}
}

// ActiveFromCountry projects a country into an ActiveStat.
func ActiveFromCountry(c *CountryStat) ActiveStat {
	return ActiveStat{
		Counts:    c.Counts,
		Name:      c.Name,
		ISOCode:   c.ISOCode,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Updated:   c.Updated,
	}
}

// HistoricalTimeline holds cumulative counts keyed by the API's M/D/YY date.
type HistoricalTimeline struct {
	Cases     map[string]int64 `json:"cases"`
	Deaths    map[string]int64 `json:"deaths"`
	Recovered map[string]int64 `json:"recovered"`
}

// Series returns the cumulative series for t.
func (h *HistoricalTimeline) Series(t StatType) map[string]int64 {
	if h == nil {
		return nil
	}
	switch t {
	case StatRecovered:
		return h.Recovered
	case StatDeaths:
		return h.Deaths
	default:
		return h.Cases
	}
}

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
