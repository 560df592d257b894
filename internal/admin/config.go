package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/models"
)

var ErrUnknownConfigKey = errors.New("unknown config key")

// GetAllRuntimeConfig returns all runtime config entries
func GetAllRuntimeConfig(ctx context.Context, db *sqlx.DB) ([]models.RuntimeConfig, error) {
	configs := []models.RuntimeConfig{}
	err := db.SelectContext(ctx, &configs, `
		SELECT key, value, value_type, description, updated_by, updated_at
		FROM runtime_config
		ORDER BY key
	`)
	return configs, err
}

// GetRuntimeConfigValue returns a single runtime config value
func GetRuntimeConfigValue(ctx context.Context, db *sqlx.DB, key string) (*models.RuntimeConfig, error) {
	var cfg models.RuntimeConfig
	err := db.GetContext(ctx, &cfg, `SELECT key, value, value_type, description, updated_by, updated_at FROM runtime_config WHERE key=$1`, key)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateRuntimeValue checks value against a declared value type.
func ValidateRuntimeValue(valueType, value string) error {
	switch valueType {
	case "int":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		if v <= 0 {
			return fmt.Errorf("value must be positive: %s", value)
		}
	case "float":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("invalid float value: %s", value)
		}
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid boolean value: %s (must be 'true' or 'false')", value)
		}
	}
	return nil
}

// UpdateRuntimeConfigValue updates a single runtime config value
func UpdateRuntimeConfigValue(ctx context.Context, db *sqlx.DB, key, value, adminUsername string) error {
	existing, err := GetRuntimeConfigValue(ctx, db, key)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	if err != nil {
		return fmt.Errorf("load config %s: %w", key, err)
	}
	if err := ValidateRuntimeValue(existing.ValueType, value); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		UPDATE runtime_config SET value=$1, updated_by=$2, updated_at=NOW() WHERE key=$3
	`, value, adminUsername, key)
	return err
}

// applyRuntimeValue copies one override onto cfg and reports whether the key
// is known.
func applyRuntimeValue(cfg *config.Config, key, value string) bool {
	v, err := strconv.Atoi(value)
	if err != nil || v <= 0 {
		return false
	}
	switch key {
	case "leaderboard_size":
		cfg.LeaderboardSize = v
	case "course_page_size":
		cfg.CoursePageSize = v
	default:
		return false
	}
	return true
}

// ApplyRuntimeConfigToConfig loads runtime config from DB and applies overrides to the Config struct
func ApplyRuntimeConfigToConfig(ctx context.Context, db *sqlx.DB, cfg *config.Config) error {
	configs, err := GetAllRuntimeConfig(ctx, db)
	if err != nil {
		return err
	}

	applied := 0
	for _, c := range configs {
		if applyRuntimeValue(cfg, c.Key, c.Value) {
			applied++
		}
	}

	log.Printf("[CONFIG] Applied %d runtime config overrides from database", applied)
	return nil
}
