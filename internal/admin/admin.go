package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/playmatatu/golf/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid admin credentials")

// GetAdminAccount retrieves an admin account by username
func GetAdminAccount(ctx context.Context, db *sqlx.DB, username string) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	err := db.GetContext(ctx, &admin, `SELECT username, display_name, token_hash, roles, created_at, updated_at FROM admin_accounts WHERE username=$1`, username)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// HashToken bcrypt-hashes a plain admin token.
func HashToken(plainToken string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyAdminToken checks if the provided token matches the stored hash
func VerifyAdminToken(hashedToken, plainToken string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken))
	return err == nil
}

// CreateAdminAccount creates or replaces an admin account (used for seeding)
func CreateAdminAccount(ctx context.Context, db *sqlx.DB, username, displayName, plainToken string, roles []string) error {
	hashedToken, err := HashToken(plainToken)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO admin_accounts (username, display_name, token_hash, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			token_hash = EXCLUDED.token_hash,
			roles = EXCLUDED.roles,
			updated_at = NOW()
	`, username, displayName, hashedToken, pq.Array(roles))

	return err
}

// ValidateAdminLogin validates a username + token combination
func ValidateAdminLogin(ctx context.Context, db *sqlx.DB, username, token string) (*models.AdminAccount, error) {
	admin, err := GetAdminAccount(ctx, db, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[ADMIN] No admin account found for %s", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !VerifyAdminToken(admin.TokenHash, token) {
		log.Printf("[ADMIN] Token verification failed for %s", username)
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

// Auditor writes moderation actions to admin_audit.
type Auditor struct {
	db *sqlx.DB
}

func NewAuditor(db *sqlx.DB) *Auditor {
	return &Auditor{db: db}
}

// LogAction records an admin action in the audit log
func (a *Auditor) LogAction(ctx context.Context, username, ip, route, action string, details map[string]interface{}, success bool) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.Printf("[ADMIN] Failed to marshal audit details: %v", err)
		detailsJSON = []byte("{}")
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO admin_audit (admin_username, ip, route, action, details, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, username, ip, route, action, detailsJSON, success)

	if err != nil {
		log.Printf("[ADMIN] Failed to log admin action %s: %v", action, err)
	}
}

// AuditLogs retrieves recent audit entries with pagination
func (a *Auditor) AuditLogs(ctx context.Context, limit, offset int) ([]models.AdminAudit, error) {
	logs := []models.AdminAudit{}
	err := a.db.SelectContext(ctx, &logs, `
		SELECT id, admin_username, ip, route, action, details, success, created_at
		FROM admin_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return logs, err
}
