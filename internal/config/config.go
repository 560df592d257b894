package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/playmatatu/golf/internal/golf"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Courses and scores
	CourseCacheSeconds int
	CoursePageSize     int
	LeaderboardSize    int
	ReplayMaxTicks     int

	// Live play
	SessionIdleMinutes int
	MaxSessions        int

	// Physics
	BallRadius       float64
	Gravity          float64
	TickMillis       int
	MaxCatchUpTicks  int
	CollisionEpsilon float64

	// Security
	JWTSecret         string
	AdminSessionHours int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	defaults := golf.DefaultPhysicsConfig()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/golf?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Courses and scores
		CourseCacheSeconds: getEnvInt("COURSE_CACHE_SECONDS", 300),
		CoursePageSize:     getEnvInt("COURSE_PAGE_SIZE", 50),
		LeaderboardSize:    getEnvInt("LEADERBOARD_SIZE", 10),
		ReplayMaxTicks:     getEnvInt("REPLAY_MAX_TICKS", 50*60*10), // ten minutes of play

		// Live play
		SessionIdleMinutes: getEnvInt("SESSION_IDLE_MINUTES", 15),
		MaxSessions:        getEnvInt("MAX_SESSIONS", 500),

		// Physics
		BallRadius:       getEnvFloat("BALL_RADIUS", defaults.BallRadius),
		Gravity:          getEnvFloat("GRAVITY", defaults.Gravity),
		TickMillis:       getEnvInt("TICK_MILLIS", int(defaults.TickDuration/time.Millisecond)),
		MaxCatchUpTicks:  getEnvInt("MAX_CATCHUP_TICKS", defaults.MaxCatchUpTicks),
		CollisionEpsilon: getEnvFloat("COLLISION_EPSILON", defaults.CollisionEpsilon),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		AdminSessionHours: getEnvInt("ADMIN_SESSION_HOURS", 12),
	}
}

// Physics returns the simulation constants with any env overrides applied.
func (c *Config) Physics() golf.PhysicsConfig {
	p := golf.DefaultPhysicsConfig()
	if c == nil {
		return p
	}
	p.BallRadius = c.BallRadius
	p.Gravity = c.Gravity
	p.TickDuration = time.Duration(c.TickMillis) * time.Millisecond
	p.MaxCatchUpTicks = c.MaxCatchUpTicks
	p.CollisionEpsilon = c.CollisionEpsilon
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
