// /internal/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Open connects a pooled SQLite handle at path, creating the parent directory
// when needed. Writers wait on the busy timeout instead of failing fast.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

// Databases bundles the guild-scoped and user-scoped pools.
type Databases struct {
	Servers *sqlx.DB
	Users   *sqlx.DB
}

// OpenAll opens both pools and bootstraps their schemas.
func OpenAll(ctx context.Context, serversPath, usersPath string) (*Databases, error) {
	servers, err := Open(ctx, serversPath)
	if err != nil {
		return nil, err
	}
	users, err := Open(ctx, usersPath)
	if err != nil {
		servers.Close()
		return nil, err
	}

	dbs := &Databases{Servers: servers, Users: users}
	if err := EnsureServersSchema(ctx, servers); err != nil {
		dbs.Close()
		return nil, err
	}
	if err := EnsureUsersSchema(ctx, users); err != nil {
		dbs.Close()
		return nil, err
	}
	return dbs, nil
}

func (d *Databases) Close() error {
	errServers := d.Servers.Close()
	errUsers := d.Users.Close()
	if errServers != nil {
		return errServers
	}
	return errUsers
}
