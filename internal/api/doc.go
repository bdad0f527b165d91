// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package api serves the dashboard page and its JSON and WebSocket API.

Routes:

	GET  /                                    dashboard page (creates a session)
	GET  /static/*                            embedded JS and CSS
	POST /api/v1/dashboard                    create a session
	GET  /api/v1/dashboard/{session}/state    current view model
	POST /api/v1/dashboard/{session}/country  {"country": "US" | "worldwide"}
	POST /api/v1/dashboard/{session}/stat-type {"stat_type": "cases" | "recovered" | "deaths"}
	GET  /api/v1/dashboard/{session}/ws       state push
	GET  /api/v1/health[/live|/ready]         health probes
	GET  /metrics                             Prometheus

Selections are asynchronous: the POST answers 202 once the intent is
queued, and the new state arrives over the WebSocket (or by polling
/state). A failed fetch never produces an HTTP error; it shows up as the
banner in the view model.

Every JSON response uses the models.APIResponse envelope:

	{"status": "error",
	 "error": {"code": "SESSION_NOT_FOUND", "message": "..."},
	 "metadata": {"timestamp": "...", "request_id": "..."}}

Middleware stack (outermost first): request ID with logging context,
real IP, panic recovery, CORS, Prometheus metrics, then per-group rate
limits, security headers and compression.
*/
package api
