package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var serversSchema = []string{
	`CREATE TABLE IF NOT EXISTS tags_tags (
		guild_id TEXT NOT NULL,
		name TEXT NOT NULL,
		content TEXT NOT NULL,
		uses INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS settings_prefixes (
		guild_id TEXT PRIMARY KEY,
		prefixes TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sentinels_config (
		guild_id TEXT PRIMARY KEY,
		toxicity REAL DEFAULT 0.85
	)`,
	`CREATE TABLE IF NOT EXISTS sentinels_decancer (
		guild_id TEXT PRIMARY KEY,
		enabled INTEGER NOT NULL DEFAULT 0
	)`,
}

var usersSchema = []string{
	`CREATE TABLE IF NOT EXISTS settings_users (
		user_id TEXT PRIMARY KEY,
		timezone TEXT,
		patron_level INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS reminders_reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		message TEXT NOT NULL,
		when_utc INTEGER NOT NULL
	)`,
}

// EnsureServersSchema creates the guild-scoped tables. Safe to run repeatedly.
func EnsureServersSchema(ctx context.Context, db *sqlx.DB) error {
	return execAll(ctx, db, "servers", serversSchema)
}

// EnsureUsersSchema creates the user-scoped tables. Safe to run repeatedly.
func EnsureUsersSchema(ctx context.Context, db *sqlx.DB) error {
	return execAll(ctx, db, "users", usersSchema)
}

func execAll(ctx context.Context, db *sqlx.DB, name string, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap %s schema: %w", name, err)
		}
	}
	return nil
}
