// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package api

import (
	"github.com/tomtom215/covidtracker/internal/dashboard"
	"github.com/tomtom215/covidtracker/internal/stats"
	ws "github.com/tomtom215/covidtracker/internal/websocket"
)

// HubNotifier renders published dashboard states and pushes them to the
// session's WebSocket clients.
type HubNotifier struct {
	hub       *ws.Hub
	formatter *stats.Formatter
}

var _ dashboard.Notifier = (*HubNotifier)(nil)

// NewHubNotifier creates a notifier that broadcasts through hub.
func NewHubNotifier(hub *ws.Hub, formatter *stats.Formatter) *HubNotifier {
	if formatter == nil {
		formatter = stats.DefaultFormatter()
	}
	return &HubNotifier{hub: hub, formatter: formatter}
}

// Publish implements dashboard.Notifier. It never blocks.
func (n *HubNotifier) Publish(sessionID string, state dashboard.ViewState) {
	n.hub.BroadcastToSession(sessionID, ws.MessageTypeState, dashboard.Render(sessionID, state, n.formatter))
}
