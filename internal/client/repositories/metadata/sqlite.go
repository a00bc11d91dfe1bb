package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sitecms/internal/dbx"
)

// SQLiteRepository keeps settings in the metadata table. It runs on a DBTX,
// so Store can be part of a caller's transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Lookup(ctx context.Context, key Key) (string, bool, error) {
	if !key.valid() {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return string(value), true, nil
}

// Store replaces the value of key.
func (r *SQLiteRepository) Store(ctx context.Context, key Key, value string) error {
	if !key.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, string(key), []byte(value))
	if err != nil {
		return fmt.Errorf("store setting %s: %w", key, err)
	}
	return nil
}

// Forget drops key; forgetting an unset key is not an error.
func (r *SQLiteRepository) Forget(ctx context.Context, key Key) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("forget setting %s: %w", key, err)
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
