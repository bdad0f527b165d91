// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package middleware provides HTTP instrumentation shared by all routes.

PrometheusMetrics records request counts, durations and in-flight requests.
Requests are labeled with the chi route pattern rather than the raw path,
so session IDs in URLs do not create one time series per session:

	/api/v1/dashboard/{session}/state

Requests that match no route are labeled "unmatched".

The wrapped ResponseWriter supports http.Hijacker so WebSocket upgrades
pass through the middleware.
*/
package middleware
