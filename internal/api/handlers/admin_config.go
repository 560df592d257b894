package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/golf/internal/admin"
	"github.com/playmatatu/golf/internal/config"
)

// GetAdminRuntimeConfig lists the tunables admins may change without a
// restart, alongside the values currently in effect
func GetAdminRuntimeConfig(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := admin.GetAllRuntimeConfig(c.Request.Context(), db)
		if err != nil {
			log.Printf("[ADMIN] Failed to fetch runtime config: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch config"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"configs": entries,
			"effective": gin.H{
				"leaderboard_size": cfg.LeaderboardSize,
				"course_page_size": cfg.CoursePageSize,
			},
		})
	}
}

// UpdateAdminRuntimeConfig sets one tunable and applies it to the running
// server
func UpdateAdminRuntimeConfig(db *sqlx.DB, cfg *config.Config, audit AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminUsername := c.GetString("admin_username")
		key := c.Param("key")

		var req struct {
			Value string `json:"value" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Value is required"})
			return
		}

		ctx := c.Request.Context()
		route := c.FullPath()
		details := map[string]interface{}{"key": key, "value": req.Value}

		if err := admin.UpdateRuntimeConfigValue(ctx, db, key, req.Value, adminUsername); err != nil {
			audit.LogAction(ctx, adminUsername, c.ClientIP(), route, "update_config", details, false)
			if errors.Is(err, admin.ErrUnknownConfigKey) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			log.Printf("[ADMIN] Failed to update config %s: %v", key, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := admin.ApplyRuntimeConfigToConfig(ctx, db, cfg); err != nil {
			log.Printf("[ADMIN] Config %s saved but not applied: %v", key, err)
		}

		audit.LogAction(ctx, adminUsername, c.ClientIP(), route, "update_config", details, true)
		log.Printf("[ADMIN] %s set %s=%s", adminUsername, key, req.Value)
		c.JSON(http.StatusOK, gin.H{"ok": true, "key": key, "value": req.Value})
	}
}
