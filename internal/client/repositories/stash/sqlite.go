package stash

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/dbx"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, entity string, d *models.Draft) error {
	token, ok := d.ID.Token()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotLocal, d.ID)
	}
	fields, err := encodeFields(d.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", d.ID, err)
	}

	query := `INSERT INTO stashed_drafts (token, entity, fields, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(token) DO UPDATE SET entity = excluded.entity,
				fields = excluded.fields,
				created_at = excluded.created_at
	`
	_, err = r.db.ExecContext(ctx, query, token.String(), entity, fields, d.ID.CreatedAt().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to stash draft: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, entity string) ([]*models.Draft, error) {
	query := `SELECT token, fields, created_at FROM stashed_drafts WHERE entity = ? ORDER BY created_at, token`
	rows, err := r.db.QueryContext(ctx, query, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to select stashed drafts: %w", err)
	}
	defer rows.Close()

	var result []*models.Draft
	for rows.Next() {
		var (
			token   string
			fields  []byte
			created int64
		)
		if err := rows.Scan(&token, &fields, &created); err != nil {
			return nil, err
		}
		tok, err := uuid.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("stashed draft %q: %w", token, err)
		}
		values, err := decodeFields(fields)
		if err != nil {
			return nil, fmt.Errorf("stashed draft %s: %w", token, err)
		}
		result = append(result, &models.Draft{
			ID:     models.LocalIDFrom(tok, time.UnixMilli(created)),
			Fields: values,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes one stashed draft. Absent drafts are not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id models.DraftID) error {
	token, ok := id.Token()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotLocal, id)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stashed_drafts WHERE token = ?`, token.String()); err != nil {
		return fmt.Errorf("failed to delete stashed draft: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, entity string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stashed_drafts WHERE entity = ?`, entity)
	if err != nil {
		return 0, fmt.Errorf("failed to clear stashed drafts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

var _ Repository = (*SQLiteRepository)(nil)
