package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/admin"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/models"
)

// Authenticator checks an admin username and token.
type Authenticator func(ctx context.Context, username, token string) (*models.AdminAccount, error)

// AdminLogin exchanges an admin username and token for a signed session token
func AdminLogin(auth Authenticator, audit AuditLogger, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Token    string `json:"token" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		username := strings.TrimSpace(req.Username)
		details := map[string]interface{}{"username": username}

		acc, err := auth(c.Request.Context(), username, strings.TrimSpace(req.Token))
		if err != nil {
			if !errors.Is(err, admin.ErrInvalidCredentials) {
				log.Printf("[ADMIN] Login error for %s: %v", username, err)
			}
			audit.LogAction(c.Request.Context(), username, c.ClientIP(), "/api/v1/admin/login", "login", details, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		ttl := time.Duration(cfg.AdminSessionHours) * time.Hour
		token, err := admin.IssueToken(cfg.JWTSecret, acc.Username, ttl, time.Now())
		if err != nil {
			log.Printf("[ADMIN] Failed to sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		audit.LogAction(c.Request.Context(), acc.Username, c.ClientIP(), "/api/v1/admin/login", "login", details, true)
		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_in": int(ttl.Seconds()),
			"admin":      gin.H{"username": acc.Username, "display_name": acc.DisplayName, "roles": acc.Roles},
		})
	}
}

// AdminMe returns the current admin session info
func AdminMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("admin_username")})
	}
}

// AdminAuthMiddleware requires a valid admin bearer token
func AdminAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		username, err := admin.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set("admin_username", username)
		c.Next()
	}
}
