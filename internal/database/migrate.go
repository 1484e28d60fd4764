package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/prosetii/club-roster/internal/config"
	"github.com/prosetii/club-roster/internal/model"
	"github.com/prosetii/club-roster/internal/utils"
)

// username collates binary so lookups and the unique index are
// case-sensitive: "Alice" and "alice" are different accounts.
const usersTable = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    username      VARCHAR(64) COLLATE utf8mb4_bin NOT NULL UNIQUE,
    password_hash VARCHAR(100) NOT NULL,
    email         VARCHAR(255) NULL,
    role          VARCHAR(16)  NOT NULL DEFAULT 'student',
    is_active     TINYINT(1)   NOT NULL DEFAULT 1,
    created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_login    DATETIME     NULL
)`

// sessions is kept for parity with earlier deployments of the roster.
// Tokens are stateless and nothing reads this table.
const sessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
    id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    user_id    BIGINT UNSIGNED NOT NULL,
    token_hash VARCHAR(64) NOT NULL,
    expires_at DATETIME    NOT NULL,
    created_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users (id)
)`

// Migrate creates the schema if it does not exist and seeds the bootstrap
// admin account when ADMIN_USERNAME/ADMIN_PASSWORD are configured. It runs
// once at startup, before the server accepts requests.
func Migrate(ctx context.Context, db *sql.DB, cfg config.Config) error {
	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, sessionsTable); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return seedAdmin(ctx, db, cfg)
}

// seedAdmin inserts the configured admin account when it is missing. The
// password is hashed before it touches the database.
func seedAdmin(ctx context.Context, db *sql.DB, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	var id uint64
	err := db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username=? LIMIT 1", cfg.AdminUsername).Scan(&id)
	if err == nil {
		return nil // already present
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("check admin user: %w", err)
	}

	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	var email any
	if cfg.AdminEmail != "" {
		email = cfg.AdminEmail
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, role, is_active) VALUES (?,?,?,?,1)",
		cfg.AdminUsername, hash, email, model.RoleAdmin); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	log.Printf("seeded admin user %q", cfg.AdminUsername)
	return nil
}
