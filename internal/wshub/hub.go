package wshub

import (
	"context"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// ClientMessage is a command received from a client.
type ClientMessage struct {
	Type string `json:"t"`
	ID   int    `json:"id,omitempty"`
}

// ServerMessage is sent to clients as JSON or msgpack.
type ServerMessage struct {
	Type string `json:"t"`
	ID   string `json:"id,omitempty"`
	Data any    `json:"d,omitempty"`
}

// Client represents a single WebSocket connection in the hub. Spectators
// receive every message but their commands are ignored.
type Client struct {
	ID        string
	Spectator bool
	Format    Format
	Conn      *websocket.Conn
	Send      chan []byte
}

func NewClient(id string, spectator bool, conn *websocket.Conn) *Client {
	return &Client{
		ID:        id,
		Spectator: spectator,
		Conn:      conn,
		Send:      make(chan []byte, 64),
	}
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, c.Format.messageType(), msg); err != nil {
				return
			}
		}
	}
}

// Hub manages the WebSocket connections attached to one game session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub. It reports false once the hub is closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.ID] = c
	return true
}

// Unregister removes a client and closes its Send channel, then broadcasts a leave message.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		close(c.Send)
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		h.BroadcastExcept(id, ServerMessage{
			Type: "leave",
			ID:   id,
		})
	}
}

// Broadcast sends a message to every client.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.BroadcastExcept("", msg)
}

// BroadcastExcept sends a message to all clients except the sender. Non-blocking: drops if channel full.
// Each format is encoded at most once.
func (h *Hub) BroadcastExcept(senderID string, msg ServerMessage) {
	var frames [2][]byte

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == senderID {
			continue
		}
		if frames[c.Format] == nil {
			data, err := Encode(c.Format, msg)
			if err != nil {
				log.Printf("[WSHub] Marshal error: %v\n", err)
				return
			}
			frames[c.Format] = data
		}
		select {
		case c.Send <- frames[c.Format]:
		default:
			// Drop message if channel full
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close drops every client and refuses new registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.Send)
		delete(h.clients, id)
	}
}
