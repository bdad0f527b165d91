// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package stats

import (
	"math"

	"github.com/tomtom215/covidtracker/internal/models"
)

// Style is the map and graph appearance of a stat type.
type Style struct {
	Color string `json:"color"`
	// Multiplier scales sqrt(count) into a circle radius in meters.
	Multiplier float64 `json:"multiplier"`
}

var styles = map[models.StatType]Style{
	models.StatCases:     {Color: "#CC1034", Multiplier: 800},
	models.StatRecovered: {Color: "#7dd71d", Multiplier: 1200},
	models.StatDeaths:    {Color: "#fb4443", Multiplier: 2000},
}

// StyleFor returns the style for t, falling back to cases.
func StyleFor(t models.StatType) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return styles[models.StatCases]
}

// MapMarker is one proportional circle on the map.
type MapMarker struct {
	Name    string        `json:"name"`
	ISOCode string        `json:"iso_code,omitempty"`
	Flag    string        `json:"flag,omitempty"`
	Center  models.LatLng `json:"center"`
	Radius  float64       `json:"radius"`
	Color   string        `json:"color"`
	Value   int64         `json:"value"`
	Counts  models.Counts `json:"counts"`
}

// CircleRadius returns sqrt(count) scaled by the stat type's multiplier.
// Negative counts draw no circle.
func CircleRadius(count int64, t models.StatType) float64 {
	if count <= 0 {
		return 0
	}
	return math.Sqrt(float64(count)) * StyleFor(t).Multiplier
}

// Markers builds one marker per country in input order, sized and colored
// for statType.
func Markers(countries []models.CountryStat, statType models.StatType) []MapMarker {
	style := StyleFor(statType)
	markers := make([]MapMarker, len(countries))
	for i := range countries {
		c := &countries[i]
		value := c.Total(statType)
		markers[i] = MapMarker{
			Name:    c.Name,
			ISOCode: c.ISOCode,
			Flag:    c.Flag,
			Center:  models.LatLng{Lat: c.Latitude, Lng: c.Longitude},
			Radius:  CircleRadius(value, statType),
			Color:   style.Color,
			Value:   value,
			Counts:  c.Counts,
		}
	}
	return markers
}
