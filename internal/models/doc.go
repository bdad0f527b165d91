// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package models defines the data structures shared across COVID Tracker.

Key Components:

  - Counts: the six headline figures (cases, recovered, deaths and their
    "today" deltas) plus active and critical
  - GlobalStat: worldwide aggregate from the /all endpoint
  - CountryStat: one country from /countries or /countries/{iso}, flattened
    from the API's nested countryInfo object
  - ActiveStat: whichever of the two is currently selected on a dashboard
  - HistoricalTimeline: cumulative per-day series from /historical/all
  - StatType: the cases/recovered/deaths toggle
  - APIResponse: the envelope used by every JSON endpoint

The upstream wire format lives in internal/diseaseapi. Types here carry the
shape the rest of the application works with and serialize to the browser.
*/
package models
