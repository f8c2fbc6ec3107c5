package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// GuildPrefixRecord is one row of settings_prefixes.
type GuildPrefixRecord struct {
	GuildID  string `db:"guild_id"`
	Prefixes string `db:"prefixes"`
}

// Prefixes stores per-guild prefix lists in the servers database.
type Prefixes struct {
	db *sqlx.DB
}

func NewPrefixes(db *sqlx.DB) *Prefixes {
	return &Prefixes{db: db}
}

// Add inserts prefix for the guild or appends it to the stored list with a
// comma. Existing entries are not deduplicated.
func (p *Prefixes) Add(ctx context.Context, guildID, prefix string) error {
	const q = `INSERT INTO settings_prefixes (guild_id, prefixes) VALUES (?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET prefixes = prefixes || ',' || excluded.prefixes`

	if _, err := p.db.ExecContext(ctx, q, guildID, prefix); err != nil {
		return fmt.Errorf("add prefix for guild %s: %w", guildID, err)
	}
	return nil
}

// Get returns the stored record for the guild; ok is false when none exists.
func (p *Prefixes) Get(ctx context.Context, guildID string) (rec GuildPrefixRecord, ok bool, err error) {
	const q = `SELECT guild_id, prefixes FROM settings_prefixes WHERE guild_id = ?`

	err = p.db.GetContext(ctx, &rec, q, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return GuildPrefixRecord{}, false, nil
	}
	if err != nil {
		return GuildPrefixRecord{}, false, fmt.Errorf("get prefixes for guild %s: %w", guildID, err)
	}
	return rec, true, nil
}
