package realtime

import (
	"encoding/json"
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active connections per company and broadcasts story and
// sprint events to everyone in that company.
type Hub struct {
	mu               sync.RWMutex
	companyToClients map[uint]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			companyToClients: make(map[uint]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a company ID.
func (h *Hub) Register(companyID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.companyToClients[companyID]; !ok {
		h.companyToClients[companyID] = make(map[Client]struct{})
	}
	h.companyToClients[companyID][client] = struct{}{}
}

// Unregister removes a client; if the company has no more clients, cleans up map.
func (h *Hub) Unregister(companyID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.companyToClients[companyID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.companyToClients, companyID)
		}
	}
}

// Broadcast sends a message to all clients of a company.
func (h *Hub) Broadcast(companyID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.companyToClients[companyID]
	for c := range clients {
		if ok := c.Send(message); !ok {
			// client write failed; let the handler clean it up on its side
		}
	}
}

// BroadcastEvent marshals and broadcasts a typed event about a story or
// sprint change. Marshal failures are dropped; events are best-effort.
func (h *Hub) BroadcastEvent(companyID uint, eventType, storyID string) {
	evt := map[string]any{
		"type":    eventType,
		"storyId": storyID,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.Broadcast(companyID, bytes)
	}
}
