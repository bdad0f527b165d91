// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package services provides suture.Service wrappers for components whose
lifecycle does not already match Serve(ctx) error.

HTTPServerService adapts http.Server's ListenAndServe/Shutdown pair.
WebSocketHubService delegates to websocket.Hub.RunWithContext.

The dashboard session registry implements suture.Service itself and is
added to the tree directly.
*/
package services
