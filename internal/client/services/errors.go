package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sitecms/internal/client/drafts"
	"github.com/dmitrijs2005/sitecms/internal/client/validation"
)

var (
	// ErrRefreshFailed means the Gateway accepted a change but the collection
	// could not be re-fetched afterwards.
	ErrRefreshFailed = errors.New("refresh after change failed")
	ErrSaveInFlight  = drafts.ErrSaveInFlight
	ErrNotBoolean    = errors.New("field is not a boolean")
	ErrNoStash       = errors.New("local stash not configured")
)

// ValidationError is returned by Save when the collection has field errors.
// Nothing is sent to the Gateway in that case.
type ValidationError struct {
	Errors validation.ErrorSet
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		for k, msg := range e.Errors {
			return fmt.Sprintf("validation failed: %s: %s", k, msg)
		}
	}
	return fmt.Sprintf("validation failed: %d errors", len(e.Errors))
}
