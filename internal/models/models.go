package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Course is a published hole. Data holds the level code of its HoleData.
type Course struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Data      string    `db:"data" json:"data"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Score is a verified completion of a course.
type Score struct {
	ID         int       `db:"id" json:"id"`
	CourseID   int       `db:"course_id" json:"course_id"`
	PlayerName string    `db:"player_name" json:"player_name"`
	Strokes    int       `db:"strokes" json:"strokes"`
	Replay     string    `db:"replay" json:"replay"`
	Ticks      int       `db:"ticks" json:"ticks"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LeaderboardEntry is one row of a course leaderboard.
type LeaderboardEntry struct {
	PlayerName string `db:"player_name" json:"player_name"`
	Strokes    int    `db:"strokes" json:"strokes"`
}

// AdminAccount can moderate courses.
type AdminAccount struct {
	Username    string         `db:"username" json:"username"`
	DisplayName string         `db:"display_name" json:"display_name"`
	TokenHash   string         `db:"token_hash" json:"-"`
	Roles       pq.StringArray `db:"roles" json:"roles"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit is an entry in the moderation log.
type AdminAudit struct {
	ID            int             `db:"id" json:"id"`
	AdminUsername string          `db:"admin_username" json:"admin_username"`
	IP            string          `db:"ip" json:"ip"`
	Route         string          `db:"route" json:"route"`
	Action        string          `db:"action" json:"action"`
	Details       json.RawMessage `db:"details" json:"details"`
	Success       bool            `db:"success" json:"success"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// RuntimeConfig is an operator-tunable setting stored in the database.
type RuntimeConfig struct {
	Key         string         `db:"key" json:"key"`
	Value       string         `db:"value" json:"value"`
	ValueType   string         `db:"value_type" json:"value_type"`
	Description sql.NullString `db:"description" json:"description"`
	UpdatedBy   sql.NullString `db:"updated_by" json:"updated_by"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
