package domain

import "errors"

// Error kinds surfaced to the HTTP layer. Lower layers wrap them with
// fmt.Errorf("...: %w", ...) and callers match with errors.Is.
var (
	// ErrConnection means the database could not be reached.
	ErrConnection = errors.New("database connection error")

	// ErrValidation means the request payload is malformed.
	ErrValidation = errors.New("validation error")

	// ErrNotFound means no row matched the requested id.
	ErrNotFound = errors.New("todo not found")

	// ErrAmbiguousResult means a lookup expected one row and got several.
	ErrAmbiguousResult = errors.New("multiple todos found for id")
)
