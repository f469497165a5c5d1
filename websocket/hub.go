package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Notification types pushed to connected clients.
const (
	NotificationTypeConnected   = "connected"
	NotificationTypeSalesUpdate = "sales_update"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID string
	Conn   *websocket.Conn
}

// Hub maintains the set of active clients and broadcasts sales record
// updates to all of them. Every authenticated staff member sees the same
// daily records, so there is no per-user routing.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Notification
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Notification, 16),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Conn.Close()
			}
			h.mu.Unlock()
		case notification := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if err := client.Conn.WriteJSON(notification); err != nil {
					client.Conn.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues a notification for every connected client.
func (h *Hub) Broadcast(notification Notification) {
	h.broadcast <- notification
}

// NotifySalesUpdate pushes a changed daily record to all clients.
func (h *Hub) NotifySalesUpdate(record interface{}) {
	h.Broadcast(Notification{
		Type:    NotificationTypeSalesUpdate,
		Message: "Daily sales record updated",
		Data:    record,
	})
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
