// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

/*
Package websocket pushes dashboard state to browsers.

Each browser tab owns a dashboard session. The tab opens one WebSocket for
that session and receives a "state" message whenever the session's
controller publishes a new view. User intents (country selection, stat
type) travel over the HTTP API, not the socket.

Key Components:

  - Hub: tracks connected clients and routes messages by session ID
  - Client: one connection with a read goroutine and a write goroutine
  - Message: {"type": ..., "data": ...} envelope

Architecture:

	┌──────────────┐
	│     Hub      │ ← BroadcastToSession(sessionID, ...)
	└──────┬───────┘
	       │ filters by session
	┌──────┴──────┬─────────────┐
	│ Client(s1)  │ Client(s1)  │ Client(s2)
	└─────────────┴─────────────┘

Message Types:

  - state: the rendered dashboard view model
  - ping: sent by the browser; answered with pong

Flow control: broadcasts never block the publisher. A full hub queue drops
the message; a client with a full send buffer is disconnected and the
browser reconnects, receiving the current state on connect.

Usage Example:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)

	client := websocket.NewClient(hub, conn, sessionID, touch)
	client.Send(websocket.Message{Type: websocket.MessageTypeState, Data: view})
	hub.Register <- client
	client.Start()

	hub.BroadcastToSession(sessionID, websocket.MessageTypeState, view)
*/
package websocket
