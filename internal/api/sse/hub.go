package sse

import (
	"log/slog"
	"sync"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// Hub fans lifecycle events out to the SSE clients watching one round.
// It mirrors the socket.io room-per-round layout of the original
// frontend contract: clients join the room for their round and stop
// receiving anything once the round finishes.
type Hub struct {
	roundID model.RoundID
	logger  *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	closed  bool
}

// NewHub creates a new Hub for a round
func NewHub(roundID model.RoundID, logger *slog.Logger) *Hub {
	return &Hub{
		roundID: roundID,
		logger:  logger.With(slog.String("round_id", string(roundID))),
		clients: make(map[*Client]bool),
	}
}

// Register adds a client to the hub. Registering against a closed hub
// closes the client immediately.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.send)
		return
	}
	h.clients[client] = true
	h.logger.Debug("sse client registered", slog.Int("total_clients", len(h.clients)))
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// BroadcastEvent sends an SSE event with a name and data to all clients.
// A client whose buffer is full misses the message; delivery is
// best-effort.
func (h *Hub) BroadcastEvent(eventName, data string) {
	msg := formatSSEMessage(eventName, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			h.logger.Warn("sse message dropped - client buffer full")
		}
	}
}

// Close disconnects all clients. Messages already buffered are still
// drained by the client connections before they see the close.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data
func formatSSEMessage(eventName, data string) []byte {
	return []byte("event: " + eventName + "\ndata: " + data + "\n\n")
}

// HubManager manages hubs for all live rounds
type HubManager struct {
	mu     sync.RWMutex
	hubs   map[model.RoundID]*Hub
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.RoundID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a round, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(roundID model.RoundID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roundID]; ok {
		return hub
	}

	hub := NewHub(roundID, m.logger)
	m.hubs[roundID] = hub
	return hub
}

// GetHub returns the hub for a round, or nil if it doesn't exist
func (m *HubManager) GetHub(roundID model.RoundID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[roundID]
}

// RemoveHub removes and closes a hub. Done once a round finishes:
// no further events will ever be emitted for that round id.
func (m *HubManager) RemoveHub(roundID model.RoundID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roundID]; ok {
		hub.Close()
		delete(m.hubs, roundID)
		m.logger.Debug("sse hub removed", slog.String("round_id", string(roundID)))
	}
}
