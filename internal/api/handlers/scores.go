package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/course"
	"github.com/playmatatu/golf/internal/models"
	"github.com/playmatatu/golf/internal/score"
)

// ScoreStore verifies rounds and serves leaderboards.
type ScoreStore interface {
	Submit(ctx context.Context, courseID int, player, replayCode string) (*models.Score, error)
	Leaderboard(ctx context.Context, courseID, n int) ([]models.LeaderboardEntry, error)
}

// SubmitScore replays a finished round and records it when it holds up
func SubmitScore(store ScoreStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req struct {
			Player string `json:"player" binding:"required"`
			Replay string `json:"replay" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player and replay are required"})
			return
		}

		sc, err := store.Submit(c.Request.Context(), courseID, req.Player, req.Replay)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, sc)
		case errors.Is(err, course.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, score.ErrInvalidPlayer), errors.Is(err, score.ErrInvalidReplay):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, score.ErrNotScored):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			log.Printf("[SCORE] Submit for course %d failed: %v", courseID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record score"})
		}
	}
}

// GetLeaderboard returns the best players on a course
func GetLeaderboard(store ScoreStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, ok := parseID(c, "id")
		if !ok {
			return
		}
		n := queryInt(c, "limit", cfg.LeaderboardSize, 1, 100)

		entries, err := store.Leaderboard(c.Request.Context(), courseID, n)
		if err != nil {
			log.Printf("[SCORE] Leaderboard for course %d failed: %v", courseID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"course_id": courseID, "entries": entries})
	}
}
