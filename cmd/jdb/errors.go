package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jdb-tool/jdb/internal/query"
	"github.com/jdb-tool/jdb/internal/store"
)

// Kind is the error taxonomy surfaced to the user.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindAccessDenied
	KindCorrupt
	KindInvalidQuery
	KindInvalidDocument
	KindUnexpected
)

// Classify maps an error to its taxonomy kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var parseErr query.ParseError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, store.ErrAccessDenied):
		return KindAccessDenied
	case errors.Is(err, store.ErrCorrupt):
		return KindCorrupt
	case errors.Is(err, store.ErrInvalidDocument):
		return KindInvalidDocument
	case errors.As(err, &parseErr):
		return KindInvalidQuery
	default:
		return KindUnexpected
	}
}

// exitClassified prints exactly one error line to stderr and exits 1.
// Every taxonomy kind maps to the same exit code; classified errors
// already name their failure class, so only unclassified ones get a
// marker.
func exitClassified(err error) {
	switch Classify(err) {
	case KindNone:
		return
	case KindUnexpected:
		fmt.Fprintf(os.Stderr, "Error: unexpected: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(ExitError)
}

// exitWithError formats an error line to stderr and exits with code.
func exitWithError(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(code)
}
