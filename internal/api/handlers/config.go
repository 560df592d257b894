package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/play"
)

// GetConfig returns the physics constants and material table clients need to
// draw and predict play.
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := cfg.Physics()

		materials := make([]gin.H, 0, len(golf.Materials()))
		for _, m := range golf.Materials() {
			props := m.Properties()
			materials = append(materials, gin.H{
				"id":       int(m),
				"name":     m.String(),
				"bounce":   props.Bounce,
				"friction": props.Friction,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"ball_radius":      p.BallRadius,
			"gravity":          p.Gravity,
			"tick_ms":          p.TickDuration.Milliseconds(),
			"sink_ticks":       p.SinkTicks,
			"max_power":        play.MaxPower,
			"leaderboard_size": cfg.LeaderboardSize,
			"replay_max_ticks": cfg.ReplayMaxTicks,
			"materials":        materials,
		})
	}
}
