package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/golf/internal/course"
	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/play"
)

// HoleSource resolves a course id to its playable hole.
type HoleSource interface {
	Hole(ctx context.Context, id int) (golf.HoleData, error)
}

// LaunchData is the payload of a launch message.
type LaunchData struct {
	Angle float64 `json:"angle"`
	Power float64 `json:"power"`
}

// HandlePlay upgrades the request and starts a live session on the course in
// the :id path parameter.
func HandlePlay(hub *Hub, holes HoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := strconv.Atoi(c.Param("id"))
		if err != nil || courseID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}

		hole, err := holes.Hole(c.Request.Context(), courseID)
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		if err != nil {
			log.Printf("[WS] Failed to load course %d: %v", courseID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load course"})
			return
		}

		var sessionID string
		sess, err := hub.manager.Create(courseID, hole, func(e play.Event) {
			hub.SendToSession(sessionID, e)
		})
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		sessionID = sess.ID

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			hub.manager.Remove(sess.ID)
			return
		}

		client := &Client{
			hub:      hub,
			conn:     conn,
			session:  sess,
			courseID: courseID,
			send:     make(chan []byte, sendBuffer),
		}
		hub.register <- client

		go sess.Run(context.Background())
		go client.writePump()
		go client.readPump()
	}
}

// readPump reads client messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Unexpected close for session %s: %v", c.sessionID(), err)
			}
			break
		}
		c.session.Touch()

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "launch":
		var data LaunchData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid launch data")
			return
		}
		if err := c.session.Launch(data.Angle, data.Power); err != nil {
			c.sendError(err.Error())
		}

	case "reset":
		if err := c.session.Reset(); err != nil {
			c.sendError(err.Error())
		}

	case "get_state":
		c.hub.SendToSession(c.sessionID(), map[string]interface{}{
			"type":     "state",
			"snapshot": c.session.Snapshot(),
		})

	case "get_replay":
		code, err := c.session.Replay()
		if err != nil {
			c.sendError("Failed to encode replay")
			return
		}
		c.hub.SendToSession(c.sessionID(), map[string]interface{}{
			"type":   "replay",
			"replay": code,
		})

	default:
		c.sendError("Unknown message type")
	}
}
