// COVID Tracker - COVID-19 Statistics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidtracker

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/covidtracker/internal/logging"
	"github.com/tomtom215/covidtracker/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeState = "state"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
)

// broadcastBufferSize bounds pending session broadcasts across all sessions.
const broadcastBufferSize = 256

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// sessionMessage is a message addressed to every client of one session.
type sessionMessage struct {
	sessionID string
	message   Message
}

// Hub maintains the set of active clients and routes each dashboard's
// state to the clients viewing it.
type Hub struct {
	clients      map[*Client]bool
	broadcast    chan sessionMessage
	closeSession chan string
	Register     chan *Client
	Unregister   chan *Client
	mu           sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		broadcast:    make(chan sessionMessage, broadcastBufferSize),
		closeSession: make(chan string, 16),
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
		clients:      make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until ctx is canceled, then closes every
// client and returns ctx.Err(). It is designed for suture supervision.
//
// DETERMINISM: Uses priority-based selection:
//   - Priority 1: Context cancellation (shutdown)
//   - Priority 2: Client lifecycle events (Register/Unregister/closeSession)
//   - Priority 3: Broadcast messages
//
// Client state is therefore always consistent before a message is routed.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: Check for shutdown (non-blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: Handle client lifecycle events (non-blocking)
		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		case sessionID := <-h.closeSession:
			h.closeSessionClients(sessionID)
			continue
		default:
		}

		// Priority 3: Handle broadcast messages or wait for any event (blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case sessionID := <-h.closeSession:
			h.closeSessionClients(sessionID)
		case msg := <-h.broadcast:
			h.broadcastToSession(msg)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().
		Str("session_id", client.sessionID).
		Int("total_clients", total).
		Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().
		Str("session_id", client.sessionID).
		Int("total_clients", total).
		Msg("websocket client disconnected")
}

// logGracefulShutdown closes all clients and logs the shutdown. ctx.Err()
// is not logged as an error because cancellation is the expected path.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// sortedClientsLocked returns clients matching keep in ID order.
// DETERMINISM: map iteration order is random; delivery order is not.
func (h *Hub) sortedClientsLocked(keep func(*Client) bool) []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if keep(client) {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToSession delivers msg to the session's clients. A client whose
// send buffer is full is disconnected; it will reconnect and receive the
// current state.
func (h *Hub) broadcastToSession(msg sessionMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.sortedClientsLocked(func(c *Client) bool {
		return c.sessionID == msg.sessionID
	})

	for _, client := range clients {
		select {
		case client.send <- msg.message:
		default:
			metrics.WSMessagesDropped.WithLabelValues("client_slow").Inc()
			close(client.send)
			delete(h.clients, client)
		}
	}
	metrics.WSConnections.Set(float64(len(h.clients)))
}

func (h *Hub) closeSessionClients(sessionID string) {
	h.mu.Lock()
	clients := h.sortedClientsLocked(func(c *Client) bool {
		return c.sessionID == sessionID
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	if len(clients) > 0 {
		logging.Debug().
			Str("session_id", sessionID).
			Int("clients_closed", len(clients)).
			Msg("closed websocket clients of ended session")
	}
}

// closeAllClients closes every client in ID order during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClientsLocked(func(*Client) bool { return true }) {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// BroadcastToSession queues a message for every client of sessionID.
// It never blocks; when the queue is full the message is dropped.
func (h *Hub) BroadcastToSession(sessionID, messageType string, data interface{}) {
	msg := sessionMessage{
		sessionID: sessionID,
		message:   Message{Type: messageType, Data: data},
	}

	select {
	case h.broadcast <- msg:
	default:
		metrics.WSMessagesDropped.WithLabelValues("broadcast_full").Inc()
		logging.Warn().
			Str("session_id", sessionID).
			Str("message_type", messageType).
			Msg("broadcast channel full, dropping message")
	}
}

// CloseSession disconnects every client of sessionID. Used when a
// dashboard session is evicted.
func (h *Hub) CloseSession(sessionID string) {
	select {
	case h.closeSession <- sessionID:
	default:
		logging.Warn().Str("session_id", sessionID).Msg("close-session queue full")
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SessionClientCount returns the number of clients viewing sessionID.
func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for client := range h.clients {
		if client.sessionID == sessionID {
			n++
		}
	}
	return n
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
