package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/golf/internal/play"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by middleware.WebSocketCORSCheck
	},
}

// Client is one browser or terminal attached to a play session.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	session  *play.Session
	courseID int
	send     chan []byte
}

func (c *Client) sessionID() string {
	return c.session.ID
}

// Hub tracks connected clients by session and by course.
type Hub struct {
	clients     map[string]*Client         // session ID -> Client
	courseRooms map[int]map[string]*Client // course ID -> session ID -> Client
	manager     *play.Manager
	register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
}

// NewHub creates a hub whose sessions live in manager.
func NewHub(manager *play.Manager) *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		courseRooms: make(map[int]map[string]*Client),
		manager:     manager,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

// Run processes registrations until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.sessionID()] = client
			if _, exists := h.courseRooms[client.courseID]; !exists {
				h.courseRooms[client.courseID] = make(map[string]*Client)
			}
			h.courseRooms[client.courseID][client.sessionID()] = client
			h.mu.Unlock()

			log.Printf("[WS] Session %s connected on course %d", client.sessionID(), client.courseID)
			client.sendJSON(map[string]interface{}{
				"type":       "state",
				"session_id": client.sessionID(),
				"course_id":  client.courseID,
				"snapshot":   client.session.Snapshot(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.sessionID()]; ok && cur == client {
				delete(h.clients, client.sessionID())
				if room, exists := h.courseRooms[client.courseID]; exists {
					delete(room, client.sessionID())
					if len(room) == 0 {
						delete(h.courseRooms, client.courseID)
					}
				}
				close(client.send)
				log.Printf("[WS] Session %s disconnected from course %d", client.sessionID(), client.courseID)
			}
			h.mu.Unlock()
			h.manager.Remove(client.sessionID())
		}
	}
}

// SendToSession sends a message to the client playing sessionID.
func (h *Hub) SendToSession(sessionID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, exists := h.clients[sessionID]; exists {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] SendToSession dropped message for session %s (buffer full)", sessionID)
		}
	}
}

// BroadcastToCourse sends a message to everyone playing courseID.
func (h *Hub) BroadcastToCourse(courseID int, message interface{}) int {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.courseRooms[courseID] {
		select {
		case client.send <- data:
			sent++
		default:
			log.Printf("[WS] Client send buffer full for session %s on course %d, dropping message", client.sessionID(), courseID)
		}
	}
	return sent
}

// Connected reports how many clients are attached.
func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WSMessage is an inbound client message.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for session %s: %v", c.sessionID(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for session %s: %v", c.sessionID(), err)
				return
			}
		}
	}
}

// sendJSON queues a message without going through the hub. Only call it from
// the hub goroutine or while the client is registered.
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Dropped message for session %s (buffer full)", c.sessionID())
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.hub.SendToSession(c.sessionID(), map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
