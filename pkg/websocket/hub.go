package websocket

import (
	"log"
	"sync"
)

// Viewer identifies a connected dashboard session.
type Viewer struct {
	UID  string
	Role string
}

type envelope struct {
	payload []byte
	accept  func(Viewer) bool
}

// Hub fans ride updates out to connected dashboard clients. Each published
// payload carries an accept predicate so only the viewers whose board the
// change belongs on receive it.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

// Publish sends payload to every connected viewer for which accept returns
// true. A nil accept delivers to everyone.
func (h *Hub) Publish(payload []byte, accept func(Viewer) bool) {
	h.broadcast <- envelope{payload: payload, accept: accept}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	log.Printf("Dashboard client connected: %s (%s)", client.Viewer.UID, client.Viewer.Role)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("Dashboard client disconnected: %s", client.Viewer.UID)
	}
}

func (h *Hub) deliver(env envelope) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if env.accept != nil && !env.accept(client.Viewer) {
			continue
		}

		select {
		case client.send <- env.payload:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			close(client.send)
			delete(h.clients, client)
		}
	}
}
