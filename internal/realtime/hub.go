// Package realtime pushes change notifications to connected clients over
// websockets. The feed carries no game data, only "this record changed"
// events; clients re-read state through the regular API, so polling remains a
// complete fallback when the socket drops.
package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Event names a record that changed.
type Event struct {
	// Type is "globals" or "group".
	Type string `json:"type"`

	// GroupID identifies the changed group when Type is "group".
	GroupID string `json:"group_id,omitempty"`
}

// Client is one connected websocket subscriber.
type Client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans events out to every connected client.
type Hub struct {
	register  chan *Client
	unreg     chan *Client
	broadcast chan Event
	clients   map[*Client]bool
}

// NewHub creates a hub; call Run before serving connections.
func NewHub() *Hub {
	return &Hub{
		register:  make(chan *Client),
		unreg:     make(chan *Client),
		broadcast: make(chan Event, 64),
		clients:   make(map[*Client]bool),
	}
}

// Run owns the client set until ctx is cancelled. A slow client's events are
// dropped rather than blocking the hub; the client falls back to polling.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unreg:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case event := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- event:
				default:
				}
			}
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				_ = c.conn.Close()
				delete(h.clients, c)
			}
			return
		}
	}
}

// GlobalsChanged announces a change to the singleton game state.
func (h *Hub) GlobalsChanged() {
	h.publish(Event{Type: "globals"})
}

// GroupChanged announces a change to one group's record.
func (h *Hub) GroupChanged(groupID string) {
	h.publish(Event{Type: "group", GroupID: groupID})
}

func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		slog.Warn("realtime broadcast buffer full, dropping event", "type", event.Type)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades an HTTP request and subscribes it to the change feed.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{conn: conn, send: make(chan Event, 16)}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; it exists to notice the close handshake.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
