package main

import (
	"context"
	"log"
	"os"

	"github.com/playmatatu/golf/internal/admin"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/database"
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

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
		log.Printf("Using default admin username: %s", username)
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		adminToken = "change-me-in-production"
		log.Printf("WARNING: Using default admin token. Set ADMIN_TOKEN env var in production!")
	}

	displayName := os.Getenv("ADMIN_DISPLAY_NAME")
	if displayName == "" {
		displayName = "Course Admin"
	}
	roles := []string{"moderator"}

	if err := admin.CreateAdminAccount(context.Background(), db, username, displayName, adminToken, roles); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin account created/updated successfully")
	log.Printf("  Username: %s", username)
	log.Printf("  Display Name: %s", displayName)
	log.Printf("  Roles: %v", roles)
	log.Println("Log in with POST /api/v1/admin/login using this username and token.")
}
