package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabases(t *testing.T) *Databases {
	t.Helper()
	dir := t.TempDir()
	dbs, err := OpenAll(context.Background(),
		filepath.Join(dir, "databases", "servers.db"),
		filepath.Join(dir, "databases", "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dbs.Close() })
	return dbs
}

func tableNames(t *testing.T, dbs *Databases, servers bool) []string {
	t.Helper()
	db := dbs.Users
	if servers {
		db = dbs.Servers
	}
	var names []string
	require.NoError(t, db.Select(&names, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	return names
}

func TestOpenAllBootstrapsSchemas(t *testing.T) {
	dbs := openTestDatabases(t)

	assert.Equal(t,
		[]string{"sentinels_config", "sentinels_decancer", "settings_prefixes", "tags_tags"},
		tableNames(t, dbs, true))
	assert.Equal(t,
		[]string{"reminders_reminders", "settings_users"},
		tableNames(t, dbs, false))
}

func TestSchemaBootstrapIsIdempotent(t *testing.T) {
	dbs := openTestDatabases(t)
	ctx := context.Background()

	require.NoError(t, EnsureServersSchema(ctx, dbs.Servers))
	require.NoError(t, EnsureUsersSchema(ctx, dbs.Users))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestPrefixesAccumulate(t *testing.T) {
	dbs := openTestDatabases(t)
	ctx := context.Background()
	p := NewPrefixes(dbs.Servers)

	_, ok, err := p.Get(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Add(ctx, "g1", "!"))
	require.NoError(t, p.Add(ctx, "g1", "$"))

	rec, ok, err := p.Get(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "!,$", rec.Prefixes)
	assert.Equal(t, "g1", rec.GuildID)
}

func TestPrefixesKeepDuplicates(t *testing.T) {
	dbs := openTestDatabases(t)
	ctx := context.Background()
	p := NewPrefixes(dbs.Servers)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Add(ctx, "g1", "!"))
	}
	require.NoError(t, p.Add(ctx, "g2", "?"))

	rec, _, err := p.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "!,!,!", rec.Prefixes)

	rec, _, err = p.Get(ctx, "g2")
	require.NoError(t, err)
	assert.Equal(t, "?", rec.Prefixes)
}

func TestPrefixesFailOnClosedPool(t *testing.T) {
	dbs := openTestDatabases(t)
	p := NewPrefixes(dbs.Servers)
	require.NoError(t, dbs.Servers.Close())

	assert.Error(t, p.Add(context.Background(), "g1", "!"))
	_, _, err := p.Get(context.Background(), "g1")
	assert.Error(t, err)
}
