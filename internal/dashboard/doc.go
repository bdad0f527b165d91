// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

// Package dashboard owns the state of each open dashboard and the rules
// for changing it.
//
// # Controller
//
// A [Controller] holds one [ViewState] and is its only writer. All changes
// go through a single event loop started by [Controller.Run]:
//
//   - user intents: [Controller.SelectCountry], [Controller.SelectStatType]
//   - fetch results posted back by the goroutines the loop starts
//
// Readers call [Controller.Snapshot], which copies the state under a read
// lock. Slices in a snapshot are replaced, never edited in place, so a
// snapshot stays valid after later updates.
//
// # Selections
//
// Selecting "worldwide" fetches the global aggregate; selecting a country
// code fetches that country. Every selection bumps a generation counter
// and cancels the previous selection's request. A result is applied only
// if its generation is still current, so a slow response can never
// overwrite a newer choice. On success the selection, active statistic,
// map center and zoom change together. On failure none of them change and
// a banner describes the error.
//
// Changing the statistic type (cases, recovered, deaths) is local and
// issues no request.
//
// # Startup
//
// When the loop starts it fetches the global aggregate, the country list
// and the historical timeline concurrently. They fill disjoint parts of the
// state and may arrive in any order.
//
// # Sessions
//
// The [Registry] keeps one controller per browser page load, evicting
// sessions that stay idle past the configured timeout.
package dashboard
