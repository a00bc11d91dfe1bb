package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("gateway unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
)

// RejectedError is a non-2xx answer other than 401/403. It matches
// ErrRejected with errors.Is.
type RejectedError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
