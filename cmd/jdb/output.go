package main

import (
	"fmt"

	"github.com/jdb-tool/jdb/internal/config"
	"github.com/jdb-tool/jdb/internal/document"
	"github.com/jdb-tool/jdb/internal/format"
	"github.com/jdb-tool/jdb/internal/store"
)

// printDocuments renders documents to stdout.
func printDocuments(docs []*document.Document, pretty bool) {
	text, err := format.Render(docs, pretty)
	if err != nil {
		exitClassified(err)
	}
	fmt.Println(text)
}

// prettyEnabled resolves the effective pretty setting: the --no-pretty
// flag wins, otherwise the configured default (true if unset).
func prettyEnabled(noPretty bool) bool {
	if noPretty {
		return false
	}
	return config.DefaultPretty()
}

// mustResolveFile resolves the database path from flag, env or config.
func mustResolveFile(flagValue string) string {
	path, err := config.ResolveDatabasePath(flagValue)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return path
}

// mustOpenStore opens the database file, exiting on classified errors.
// The caller is responsible for calling Close() on the returned store.
func mustOpenStore(path string) *store.Store {
	s, err := store.Open(path)
	if err != nil {
		exitClassified(err)
	}
	return s
}

// countNoun formats "1 document" / "3 documents".
func countNoun(n int) string {
	if n == 1 {
		return "1 document"
	}
	return fmt.Sprintf("%d documents", n)
}
