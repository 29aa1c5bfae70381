package store

import "errors"

// Sentinel errors for the failure classes a command can hit. Callers
// match them with errors.Is; the wrapping message carries the path or
// payload detail.
var (
	// ErrNotFound marks a database path whose directory does not exist.
	ErrNotFound = errors.New("database not found")

	// ErrAccessDenied marks a path that cannot be read or written.
	ErrAccessDenied = errors.New("access denied")

	// ErrCorrupt marks file content that is not a valid collection.
	ErrCorrupt = errors.New("database corrupt")

	// ErrInvalidDocument marks an insert or update payload that is not
	// a JSON object (or non-empty array of objects, for inserts).
	ErrInvalidDocument = errors.New("invalid document")
)
