package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// client pairs a connection with its write lock. Data frames may come
// from any number of request goroutines at once; the lock keeps them
// off the wire one at a time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub maps each authenticated user to at most one live connection.
// A reconnect replaces (and closes) the previous connection.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[userID]; exists && old.conn != nil {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn}
}

func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Only drop the entry if it still belongs to this connection; a
	// reconnect may already have replaced it.
	if current, exists := h.clients[userID]; exists && current.conn == conn {
		if current.conn != nil {
			_ = current.conn.Close()
		}
		delete(h.clients, userID)
	}
}

// SendToUser pushes an event to the user's live channel if connected.
// Returns false when no channel exists or the write fails. The write
// carries a deadline, so a stalled receiver can delay the caller by at
// most writeWait before being dropped.
func (h *Hub) SendToUser(userID int64, event any) bool {
	h.mutex.RLock()
	c, exists := h.clients[userID]
	h.mutex.RUnlock()

	if !exists || c.conn == nil {
		return false
	}

	c.mu.Lock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.conn.WriteJSON(event)
	c.mu.Unlock()

	if err != nil {
		h.Unregister(userID, c.conn)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.clients {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, userID)
	}
}
