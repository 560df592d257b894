package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/models"
)

// AuditReader lists admin audit entries.
type AuditReader interface {
	AuditLogs(ctx context.Context, limit, offset int) ([]models.AdminAudit, error)
}

// GetAdminAuditLogs returns paginated audit log entries
func GetAdminAuditLogs(audit AuditReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit", 25, 1, 200)
		offset := queryInt(c, "offset", 0, 0, 0)

		logs, err := audit.AuditLogs(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to fetch audit logs: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit logs"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"logs": logs, "limit": limit, "offset": offset})
	}
}
