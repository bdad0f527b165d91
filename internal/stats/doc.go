// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package stats holds the pure sorting, formatting and shaping functions
// behind the dashboard's table, cards, line graph and map.
//
// Nothing here performs I/O or keeps state; every function is safe to
// call concurrently.
//
//	rows := stats.SortByCasesDescending(countries)  // table order
//	stats.FormatCount(&n)                            // "1,234,567"
//	stats.FormatDelta(&today)                        // "+1.2k"
//	stats.DailySeries(timeline, models.StatCases)    // line graph points
//	stats.Markers(countries, models.StatDeaths)      // map circles
package stats
