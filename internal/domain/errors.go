package domain

import "errors"

// Sentinel errors shared by the repo and service layers. Handlers map them to
// HTTP status codes with errors.Is.
var (
	// ErrValidation marks a caller-fixable request-shape problem. The wrap
	// message names the first violated field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an identifier that does not resolve to a row.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate-name rejection on an explicit create.
	ErrConflict = errors.New("already exists")
)
