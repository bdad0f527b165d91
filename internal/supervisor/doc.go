// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package supervisor runs the server's long-lived services under a suture v4
supervisor tree.

# Overview

Services are grouped into three layers so a crash in one does not take
the others down:

	RootSupervisor ("covidtracker")
	├── SessionSupervisor ("session-layer")
	│   └── dashboard.Registry (idle eviction, controller shutdown)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A restarted hub drops its connections and browsers reconnect. A restarted
registry keeps its sessions; only the cleanup loop is restarted.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddSessionService(registry)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

Supervisor events (restarts, backoff, services that fail to stop) are
logged through sutureslog, which bridges to the zerolog logger.
*/
package supervisor
