package serverapp

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type pushFrame struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Hub fans server-side state changes out to the subscribed clients of each
// player identity. One player may hold several live subscriptions (several
// devices); every one receives every update frame.
type Hub struct {
	mu        sync.Mutex
	clients   map[string]map[*pushClient]struct{}
	logger    *log.Logger
	heartbeat time.Duration
	upgrader  websocket.Upgrader
}

func NewHub(logger *log.Logger, heartbeat time.Duration) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Hub{
		clients:   map[string]map[*pushClient]struct{}{},
		logger:    logger,
		heartbeat: heartbeat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game client is a separate origin in development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type pushClient struct {
	conn   *websocket.Conn
	send   chan pushFrame
	origin string
}

// Serve upgrades the request and keeps the subscription alive until the
// peer goes away. The origin query parameter, when present, ties the
// subscription to its owner's uploads so it never hears its own echo.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, playerID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("push: upgrade: %v", err)
		return
	}

	c := &pushClient{
		conn:   conn,
		send:   make(chan pushFrame, 32),
		origin: r.URL.Query().Get("origin"),
	}
	h.register(playerID, c)
	defer h.unregister(playerID, c)

	go c.writeLoop(h.heartbeat)

	// Reads are discarded; the read loop exists to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(id string, c *pushClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[id] == nil {
		h.clients[id] = map[*pushClient]struct{}{}
	}
	h.clients[id][c] = struct{}{}
}

func (h *Hub) unregister(id string, c *pushClient) {
	h.mu.Lock()
	if set, ok := h.clients[id]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, id)
		}
	}
	h.mu.Unlock()

	close(c.send)
	_ = c.conn.Close()
}

// Broadcast queues an update frame for every subscription of one identity
// except the one whose origin token matches exceptOrigin (the uploader must
// not receive its own write back, or a stale echo could overwrite progress
// made after the upload). Pass an empty exceptOrigin for server-originated
// changes, which every subscription should hear. A subscriber with a full
// queue is skipped rather than blocked on.
func (h *Hub) Broadcast(id string, data map[string]any, exceptOrigin string) {
	if len(data) == 0 {
		return
	}
	frame := pushFrame{Type: "update", Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[id] {
		if exceptOrigin != "" && c.origin == exceptOrigin {
			continue
		}
		select {
		case c.send <- frame:
		default:
		}
	}
}

// Subscribers reports the live subscription count for an identity.
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[id])
}

func (c *pushClient) writeLoop(heartbeat time.Duration) {
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteJSON(pushFrame{Type: "heartbeat"}); err != nil {
				return
			}
		}
	}
}
