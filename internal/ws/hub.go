package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Per-subscriber buffer. A viewer that falls this far behind is dropped.
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard may be served from any origin
	},
}

// Hub maintains the set of live-viewer subscriptions and fans events out to
// them. It is constructed at startup and injected into the webhook handler.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan []byte]struct{}),
	}
}

// Subscribe registers and returns a new subscription channel.
func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, sendBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a subscription channel. Safe to call for a
// channel the hub has already dropped.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Publish delivers the JSON serialization of v to every subscriber.
// Delivery is best-effort: a subscriber whose buffer is full is dropped so
// one slow viewer never blocks the publisher or the other viewers.
func (h *Hub) Publish(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling broadcast event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- payload:
		default:
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Close drops every subscription. Called on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Count reports the number of active subscriptions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// ServeWs upgrades an HTTP request to a WebSocket live-viewer connection.
// The connection is server-to-client only; inbound frames are discarded.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	ch := h.Subscribe()
	go writePump(conn, ch)
	go h.readPump(conn, ch)
}

func (h *Hub) readPump(conn *websocket.Conn, ch chan []byte) {
	defer func() {
		h.Unsubscribe(ch)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		// Clients are not expected to send anything; ignore what arrives.
	}
}

func writePump(conn *websocket.Conn, ch chan []byte) {
	defer conn.Close()
	for message := range ch {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}
