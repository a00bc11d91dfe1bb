package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/sitecms/internal/client/migrations"
	"github.com/dmitrijs2005/sitecms/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sitecms/internal/client/repositories/stash"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Repositories groups the local state stores of one console session.
type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
	Stash    stash.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db)
}

// InitDatabase opens (creating if needed) the SQLite file at dsn, migrates
// it and returns the repositories bound to it. The caller closes DB.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Stash:    stash.NewSQLiteRepository(db),
	}, nil
}
