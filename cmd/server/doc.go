// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package main is the entry point for the COVID Tracker server.

The server renders a COVID-19 statistics dashboard: headline cards, a
table of countries sorted by cases, a map of proportional circles and a
worldwide line graph. Figures come from the disease.sh API; nothing is
stored.

# Application Architecture

	RootSupervisor ("covidtracker")
	├── SessionSupervisor ("session-layer")
	│   └── dashboard.Registry
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Each page load creates a dashboard session. Its controller owns the view
state, issues upstream fetches and publishes every change to the hub,
which pushes it to the session's browser tabs.

# Configuration

Koanf v2 layers, highest priority first:
  - Environment variables (HTTP_PORT, DISEASE_API_URL, NUMBER_LOCALE, ...)
  - Config file (config.yaml, or CONFIG_PATH)
  - Built-in defaults

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains, the
hub closes WebSocket connections and every session controller stops.

# Example Usage

	export DISEASE_API_URL=https://disease.sh/v3/covid-19
	export NUMBER_LOCALE=de
	./covidtracker
*/
package main
