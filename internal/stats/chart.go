// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package stats

import (
	"slices"
	"time"

	"github.com/tomtom215/covidtracker/internal/models"
)

// upstreamDateLayout is the M/D/YY key format of the historical endpoint.
const upstreamDateLayout = "1/2/06"

// ChartPoint is one day on the line graph.
type ChartPoint struct {
	Date  string `json:"x"` // YYYY-MM-DD
	Value int64  `json:"y"`
}

// DailySeries converts a cumulative series into day-over-day changes in
// chronological order. The earliest day only seeds the baseline, so n days
// of history produce n-1 points. Keys that are not M/D/YY dates are skipped.
func DailySeries(timeline *models.HistoricalTimeline, statType models.StatType) []ChartPoint {
	series := timeline.Series(statType)
	if len(series) < 2 {
		return []ChartPoint{}
	}

	type day struct {
		date  time.Time
		total int64
	}
	days := make([]day, 0, len(series))
	for key, total := range series {
		date, err := time.Parse(upstreamDateLayout, key)
		if err != nil {
			continue
		}
		days = append(days, day{date: date, total: total})
	}
	slices.SortFunc(days, func(a, b day) int {
		return a.date.Compare(b.date)
	})

	points := make([]ChartPoint, 0, len(days))
	for i := 1; i < len(days); i++ {
		points = append(points, ChartPoint{
			Date:  days[i].date.Format(time.DateOnly),
			Value: days[i].total - days[i-1].total,
		})
	}
	return points
}
