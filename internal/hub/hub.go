package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event types published for invitation rosters.
const (
	EventPlayerJoined      = "player_joined"
	EventPlayerLeft        = "player_left"
	EventPlayerRemoved     = "player_removed"
	EventInvitationUpdated = "invitation_updated"
	EventInvitationDeleted = "invitation_deleted"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a single subscriber to one invitation's events. The SSE handler
// drains it until it is closed.
type Client chan []byte

// Hub fans roster events out to the clients watching each invitation.
type Hub struct {
	invitations map[uint]map[Client]bool
	mu          sync.RWMutex
}

// GlobalHub is the process-wide hub used by the HTTP layer.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		invitations: make(map[uint]map[Client]bool),
	}
}

// Subscribe registers a client for an invitation.
func (h *Hub) Subscribe(invitationID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.invitations[invitationID]; !ok {
		h.invitations[invitationID] = make(map[Client]bool)
	}
	h.invitations[invitationID][client] = true
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(invitationID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.invitations[invitationID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.invitations, invitationID)
			}
		}
	}
}

// Subscribers returns the number of clients watching an invitation.
func (h *Hub) Subscribers(invitationID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.invitations[invitationID])
}

// Broadcast sends an event to every client of an invitation. Sends never
// block: a client whose buffer is full misses the event.
func (h *Hub) Broadcast(invitationID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.invitations[invitationID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshal hub event", "type", event.Type, "error", err)
		return
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
			slog.Warn("dropping event for slow client", "invitation_id", invitationID, "type", event.Type)
		}
	}
}
