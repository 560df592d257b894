package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/admin"
	"github.com/playmatatu/golf/internal/api"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/course"
	"github.com/playmatatu/golf/internal/database"
	"github.com/playmatatu/golf/internal/migrations"
	"github.com/playmatatu/golf/internal/play"
	"github.com/playmatatu/golf/internal/redis"
	"github.com/playmatatu/golf/internal/score"
	"github.com/playmatatu/golf/internal/ws"
)

func main() {
	// Initialize configuration (reads .env when present)
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("[MIGRATE] Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL, os.Getenv("MIGRATIONS_DIR")); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	if err := admin.ApplyRuntimeConfigToConfig(ctx, db, cfg); err != nil {
		log.Printf("[CONFIG] Runtime config not applied: %v", err)
	}

	physics := cfg.Physics()
	courses := course.NewService(db, rdb, time.Duration(cfg.CourseCacheSeconds)*time.Second, physics)
	scores := score.NewService(db, rdb, courses, physics, cfg.ReplayMaxTicks)

	// Live play: sessions, hub and cross-instance course events
	manager := play.NewManager(physics, cfg.MaxSessions, time.Duration(cfg.SessionIdleMinutes)*time.Minute)
	go manager.StartExpiryChecker(ctx, 30*time.Second)
	hub := ws.NewHub(manager)
	go hub.Run()
	ws.StartCourseEventSubscriber(ctx, rdb, hub)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	api.SetupRoutes(router, api.Services{
		DB:      db,
		Redis:   rdb,
		Courses: courses,
		Scores:  scores,
		Auditor: admin.NewAuditor(db),
		Hub:     hub,
	}, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting golf server on port %s (tick=%v, radius=%v)", port, physics.TickDuration, physics.BallRadius)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
