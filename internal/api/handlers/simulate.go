package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/levelcode"
)

// Simulate plays a replay code on a hole code without storing anything. An
// empty hole code means the default practice hole.
func Simulate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Hole     string `json:"hole"`
			Replay   string `json:"replay" binding:"required"`
			MaxTicks int    `json:"max_ticks"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "replay is required"})
			return
		}

		hole, err := levelcode.DecodeHole(req.Hole)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		replay, err := levelcode.DecodeReplay(req.Replay)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(replay) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "replay has no players"})
			return
		}

		maxTicks := cfg.ReplayMaxTicks
		if req.MaxTicks > 0 && req.MaxTicks < maxTicks {
			maxTicks = req.MaxTicks
		}

		result := golf.Simulate(hole, replay, cfg.Physics(), maxTicks)
		c.JSON(http.StatusOK, result)
	}
}
