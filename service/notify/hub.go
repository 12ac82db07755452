package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/IgnacioMeyer12/concesionaria-server/cmd/models"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is pushed to every connected admin dashboard.
type Event struct {
	Type string              `json:"type"`
	Cita *models.Appointment `json:"cita,omitempty"`
}

const (
	EventCitaCreada   = "cita_creada"
	EventCitaResuelta = "cita_resuelta"
)

// Hub tracks connected admin dashboards and fans events out to them.
// Connections that fail a write are dropped on the spot.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws/admin", h.HandleWebSocket)
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go h.readLoop(conn)
}

// readLoop discards inbound frames; the feed is one-way. Reading is still
// required so close/ping control frames are processed.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends the event to every connected client.
func (h *Hub) Broadcast(eventType string, cita *models.Appointment) {
	message, err := json.Marshal(Event{Type: eventType, Cita: cita})
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
