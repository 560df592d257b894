package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

const version = "1.0.0"

// PlayerCounter reports how many live play sockets are open.
type PlayerCounter interface {
	Connected() int
}

// HealthCheck reports uptime and the number of rounds being played
func HealthCheck(players PlayerCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		live := 0
		if players != nil {
			live = players.Connected()
		}
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"service":      "golf-api",
			"version":      version,
			"uptime":       time.Since(startTime).Round(time.Second).String(),
			"live_players": live,
		})
	}
}
