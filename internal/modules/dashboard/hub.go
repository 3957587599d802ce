package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans out invalidation events to every dashboard open for a studio.
// It replaces server-side view revalidation: mutations announce stale
// paths and connected clients refetch.
type Hub struct {
	connections map[uuid.UUID]map[*websocket.Conn]bool
	mutex       sync.RWMutex
}

type event struct {
	Type  string   `json:"type"`
	Paths []string `json:"paths,omitempty"`
	At    string   `json:"at"`
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(studioID uuid.UUID, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.connections[studioID] == nil {
		h.connections[studioID] = make(map[*websocket.Conn]bool)
	}
	h.connections[studioID][conn] = true
}

func (h *Hub) Unregister(studioID uuid.UUID, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, exists := h.connections[studioID]; exists {
		if conns[conn] {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, studioID)
		}
	}
}

// Invalidate implements the mutation-side view invalidation contract.
// Connections that fail to write are dropped.
func (h *Hub) Invalidate(studioID uuid.UUID, paths ...string) {
	msg := event{
		Type:  "invalidate",
		Paths: paths,
		At:    time.Now().UTC().Format(time.RFC3339),
	}

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[studioID]))
	for conn := range h.connections[studioID] {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.Unregister(studioID, conn)
		}
	}
}

func (h *Hub) OnlineCount(studioID uuid.UUID) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[studioID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for studioID, conns := range h.connections {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.connections, studioID)
	}
}
