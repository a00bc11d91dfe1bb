package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "state.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.DB.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	for _, table := range []string{"goose_db_version", "metadata", "stashed_drafts"} {
		assert.True(t, tableExists(t, repos.DB, table), table)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "state.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db), "second run must be a no-op")
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestInitDatabase_StatePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "state.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.Metadata.Store(ctx, metadata.LastEntity, "faq"))
	d := &models.Draft{ID: models.NewLocalID(time.Now()), Fields: map[string]any{"title": "x"}}
	require.NoError(t, repos.Stash.Save(ctx, "faq", d))
	require.NoError(t, repos.DB.Close())

	repos, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.DB.Close()

	v, ok, err := repos.Metadata.Lookup(ctx, metadata.LastEntity)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "faq", v)

	stashed, err := repos.Stash.List(ctx, "faq")
	require.NoError(t, err)
	require.Len(t, stashed, 1)
	assert.True(t, stashed[0].ID.Equal(d.ID))
}
