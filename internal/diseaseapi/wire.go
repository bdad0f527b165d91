// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package diseaseapi

import (
	"time"

	"github.com/tomtom215/covidtracker/internal/models"
)

// Upstream payload shapes. Only fields the dashboard reads are decoded.

type apiCounts struct {
	Cases          int64 `json:"cases"`
	TodayCases     int64 `json:"todayCases"`
	Deaths         int64 `json:"deaths"`
	TodayDeaths    int64 `json:"todayDeaths"`
	Recovered      int64 `json:"recovered"`
	TodayRecovered int64 `json:"todayRecovered"`
	Active         int64 `json:"active"`
	Critical       int64 `json:"critical"`
}

func (c apiCounts) toModel() models.Counts {
	return models.Counts{
		Cases:          c.Cases,
		TodayCases:     c.TodayCases,
		Recovered:      c.Recovered,
		TodayRecovered: c.TodayRecovered,
		Deaths:         c.Deaths,
		TodayDeaths:    c.TodayDeaths,
		Active:         c.Active,
		Critical:       c.Critical,
	}
}

type apiGlobal struct {
	apiCounts
	Updated           int64 `json:"updated" validate:"required"`
	AffectedCountries int   `json:"affectedCountries"`
}

func (g *apiGlobal) toModel() *models.GlobalStat {
	return &models.GlobalStat{
		Counts:            g.apiCounts.toModel(),
		AffectedCountries: g.AffectedCountries,
		Updated:           millis(g.Updated),
	}
}

type apiCountryInfo struct {
	ISO2 *string `json:"iso2"` // null for cruise ships
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
	Flag string  `json:"flag"`
}

type apiCountry struct {
	apiCounts
	Country     string         `json:"country" validate:"required"`
	CountryInfo apiCountryInfo `json:"countryInfo"`
	Continent   string         `json:"continent"`
	Updated     int64          `json:"updated"`
}

func (c *apiCountry) toModel() models.CountryStat {
	iso := ""
	if c.CountryInfo.ISO2 != nil {
		iso = *c.CountryInfo.ISO2
	}
	return models.CountryStat{
		Name:      c.Country,
		ISOCode:   iso,
		Flag:      c.CountryInfo.Flag,
		Continent: c.Continent,
		Counts:    c.apiCounts.toModel(),
		Latitude:  c.CountryInfo.Lat,
		Longitude: c.CountryInfo.Long,
		Updated:   millis(c.Updated),
	}
}

type apiHistorical struct {
	Cases     map[string]int64 `json:"cases" validate:"required"`
	Deaths    map[string]int64 `json:"deaths"`
	Recovered map[string]int64 `json:"recovered"`
}

func (h *apiHistorical) toModel() *models.HistoricalTimeline {
	return &models.HistoricalTimeline{
		Cases:     h.Cases,
		Deaths:    h.Deaths,
		Recovered: h.Recovered,
	}
}

// apiMessage is the body the API sends instead of a record, e.g.
// {"message":"Country not found or doesn't have any cases"}.
type apiMessage struct {
	Message string `json:"message"`
}

func millis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
