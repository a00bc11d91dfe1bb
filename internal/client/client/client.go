package client

import (
	"context"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/netx"
)

// Gateway is the REST backend that persists entity records. Paths are
// relative to the gateway base URL, e.g. "/api/admin/services/7/".
type Gateway interface {
	List(ctx context.Context, path string) ([]models.Record, error)
	// Create returns the record from the response body, or nil when the
	// gateway answered without one.
	Create(ctx context.Context, path string, p Payload) (models.Record, error)
	Update(ctx context.Context, path, method string, p Payload) error
	Delete(ctx context.Context, path string) error
}

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Payload is the body of a create or update. It is sent as JSON unless it
// carries files, in which case it becomes multipart/form-data with every
// field rendered as text.
type Payload struct {
	Fields map[string]any
	Files  []netx.FilePart
}

func (p Payload) Multipart() bool {
	return len(p.Files) > 0
}
