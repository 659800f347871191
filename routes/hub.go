package routes

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"catalog/models"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gorilla/websocket"
)

// Publisher receives change events after successful mutations.
type Publisher interface {
	Publish(e models.Event)
}

const writeWait = 5 * time.Second

// Hub fans change events out to every connected websocket client. Clients
// only listen; anything they send is discarded.
type Hub struct {
	upgrader  websocket.Upgrader
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan models.Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub returns a hub accepting upgrades from origins allowOrigin approves.
// Requests without an Origin header are always accepted.
func NewHub(allowOrigin func(origin string) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin(origin)
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.Event, 100),
		done:      make(chan struct{}),
	}
}

// Publish queues e for delivery. A full queue drops the event rather than
// blocking the request that produced it.
func (h *Hub) Publish(e models.Event) {
	select {
	case h.broadcast <- e:
	default:
		log.Warnf("Change feed full, dropping %s event", e.Type)
	}
}

// Run delivers queued events until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case e := <-h.broadcast:
			h.send(e)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) send(e models.Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Errorf("Encode change event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warnf("WebSocket write error: %v", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	log.Infof("Change feed client connected: %s", conn.RemoteAddr())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("WebSocket read error: %v", err)
			}
			break
		}
	}

	h.mu.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
	log.Infof("Change feed client disconnected: %s", conn.RemoteAddr())
}

// Clients reports how many listeners are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close stops Run and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		defer h.mu.Unlock()
		for client := range h.clients {
			client.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			client.Close()
			delete(h.clients, client)
		}
	})
}
