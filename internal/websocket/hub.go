package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"fittrack/internal/observability"
	"fittrack/internal/repository"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// How often the hub polls the ranking version. Clients refetch the
	// leaderboard only when the version moves, which avoids a request storm.
	versionHeartbeatInterval = 2 * time.Second
)

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and broadcasts ranking version heartbeats so
// dashboards know when user points have changed.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	redisRepo  *repository.RedisRepository

	mu          sync.RWMutex
	lastVersion int64
}

// VersionUpdate is the heartbeat message sent to clients.
type VersionUpdate struct {
	Type    string `json:"type"`
	Version int64  `json:"version"`
}

// NewHub creates a new WebSocket hub
func NewHub(redisRepo *repository.RedisRepository) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		redisRepo:  redisRepo,
	}
}

// Run starts the WebSocket hub
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(versionHeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			observability.SetWebsocketClients(count)
			h.sendInitialVersion(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			observability.SetWebsocketClients(count)

		case <-ticker.C:
			h.broadcastIfChanged(ctx)

		case <-ctx.Done():
			log.Println("websocket hub shutting down")
			return
		}
	}
}

// broadcastIfChanged polls the ranking version and fans it out when it moved.
func (h *Hub) broadcastIfChanged(ctx context.Context) {
	version, err := h.redisRepo.GetVersion(ctx)
	if err != nil {
		log.Printf("failed to read ranking version: %v", err)
		return
	}
	if version == h.lastVersion {
		return
	}
	h.lastVersion = version

	message, err := json.Marshal(VersionUpdate{Type: "VERSION_UPDATE", Version: version})
	if err != nil {
		log.Printf("failed to marshal version update: %v", err)
		return
	}

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow client, skip this heartbeat.
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) sendInitialVersion(client *Client) {
	version, err := h.redisRepo.GetVersion(context.Background())
	if err != nil {
		log.Printf("failed to read initial version: %v", err)
		return
	}
	if h.lastVersion == 0 {
		h.lastVersion = version
	}

	message, err := json.Marshal(VersionUpdate{Type: "VERSION_UPDATE", Version: version})
	if err != nil {
		return
	}

	select {
	case client.send <- message:
	case <-time.After(2 * time.Second):
		log.Println("timeout sending initial version")
	}
}

// ClientCount returns the current number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// readPump drains (and ignores) client messages until disconnect.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		// Fold queued messages into the same frame.
		n := len(c.send)
		for i := 0; i < n; i++ {
			w.Write([]byte{'\n'})
			w.Write(<-c.send)
		}
		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ServeWS handles WebSocket requests from clients
func ServeWS(hub *Hub, conn *websocket.Conn) {
	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	client.readPump()
}
