package websocket

import (
	"log/slog"
	"sync"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// Hub maintains the set of active Clients and pushes refresh events to them.
// Events are lightweight change notifications carrying identifiers only;
// clients re-query the dashboard endpoints to pick up new data.
type Hub struct {
	// clients maps user IDs to their active connections.
	// A single user can have multiple connections (multiple tabs/devices).
	clients map[int64]map[*Client]bool

	broadcast chan domain.Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex

	logger *slog.Logger
}

var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		broadcast:  make(chan domain.Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Broadcast queues an event for delivery to connected clients. A full queue
// drops the event rather than blocking the mutation path; dashboards refresh
// on their next event either way.
func (h *Hub) Broadcast(event domain.Event) error {
	select {
	case h.broadcast <- event:
		return nil
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			"event_type", event.Type,
			"ticket_id", event.TicketID,
		)
		return nil
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true

	h.logger.Info("client registered",
		"user_id", client.UserID,
		"total_connections", len(h.clients[client.UserID]),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		if _, exists := userClients[client]; exists {
			delete(userClients, client)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
		}
	}

	client.CloseSend()

	h.logger.Info("client unregistered", "user_id", client.UserID)
}

// broadcastEvent fans the event out. Ticket changes go to everyone; flag
// changes only concern the user who owns the flags.
func (h *Hub) broadcastEvent(event domain.Event) {
	h.mu.RLock()
	var clients []*Client
	for userID, userClients := range h.clients {
		if event.Type == domain.EventFlagsChanged && event.UserID != 0 && event.UserID != userID {
			continue
		}
		for client := range userClients {
			clients = append(clients, client)
		}
	}
	h.mu.RUnlock()

	h.logger.Debug("broadcasting event",
		"event_type", event.Type,
		"ticket_id", event.TicketID,
		"client_count", len(clients),
	)

	for _, client := range clients {
		select {
		case client.Send <- event:
		default:
			h.logger.Warn("client send buffer full, unregistering",
				"user_id", client.UserID,
			)
			h.unregisterClient(client)
		}
	}
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, userClients := range h.clients {
		count += len(userClients)
	}
	return count
}

// IsUserConnected checks if a user has any active connections
func (h *Hub) IsUserConnected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[userID]
	return ok && len(clients) > 0
}
