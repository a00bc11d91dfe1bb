package stash

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
)

var ErrNotLocal = errors.New("only local drafts can be stashed")

// Repository persists local-only drafts per entity.
type Repository interface {
	// Save inserts or replaces the draft keyed by its local token.
	Save(ctx context.Context, entity string, d *models.Draft) error
	// List returns the stashed drafts of entity, oldest first.
	List(ctx context.Context, entity string) ([]*models.Draft, error)
	Delete(ctx context.Context, id models.DraftID) error
	// Clear drops every stashed draft of entity and reports how many.
	Clear(ctx context.Context, entity string) (int64, error)
}
