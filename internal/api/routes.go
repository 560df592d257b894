package api

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/golf/internal/admin"
	"github.com/playmatatu/golf/internal/api/handlers"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/course"
	"github.com/playmatatu/golf/internal/middleware"
	"github.com/playmatatu/golf/internal/models"
	"github.com/playmatatu/golf/internal/score"
	"github.com/playmatatu/golf/internal/ws"
	"github.com/redis/go-redis/v9"
)

// Services bundles what the routes are wired to.
type Services struct {
	DB      *sqlx.DB
	Redis   *redis.Client
	Courses *course.Service
	Scores  *score.Service
	Auditor *admin.Auditor
	Hub     *ws.Hub
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc Services, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	authenticate := func(ctx context.Context, username, token string) (*models.AdminAccount, error) {
		return admin.ValidateAdminLogin(ctx, svc.DB, username, token)
	}
	notifyDeleted := func(ctx context.Context, courseID int) error {
		return ws.PublishCourseDeleted(ctx, svc.Redis, courseID)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(svc.Hub))
		v1.GET("/config", handlers.GetConfig(cfg))
		v1.POST("/simulate", handlers.Simulate(cfg))

		courses := v1.Group("/courses")
		{
			courses.GET("", handlers.ListCourses(svc.Courses, cfg))
			courses.POST("", handlers.CreateCourse(svc.Courses))
			courses.GET("/:id", handlers.GetCourse(svc.Courses))
			courses.DELETE("/:id", handlers.AdminAuthMiddleware(cfg), handlers.DeleteCourse(svc.Courses, svc.Auditor, notifyDeleted))
			courses.POST("/:id/scores", handlers.SubmitScore(svc.Scores))
			courses.GET("/:id/leaderboard", handlers.GetLeaderboard(svc.Scores, cfg))
			courses.GET("/:id/play/ws", middleware.WebSocketCORSCheck(cfg), ws.HandlePlay(svc.Hub, svc.Courses))
		}

		v1.POST("/admin/login", handlers.AdminLogin(authenticate, svc.Auditor, cfg))
		adminGroup := v1.Group("/admin", handlers.AdminAuthMiddleware(cfg))
		{
			adminGroup.GET("/me", handlers.AdminMe())
			adminGroup.GET("/audit", handlers.GetAdminAuditLogs(svc.Auditor))
			adminGroup.GET("/config", handlers.GetAdminRuntimeConfig(svc.DB, cfg))
			adminGroup.PUT("/config/:key", handlers.UpdateAdminRuntimeConfig(svc.DB, cfg, svc.Auditor))
		}
	}
}
