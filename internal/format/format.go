// Package format renders document sets for display.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jdb-tool/jdb/internal/document"
)

// EmptyMessage is printed when a listing or search yields no documents,
// so "ran fine, zero matches" is distinguishable from no output at all.
const EmptyMessage = "No documents found in the database."

// Render formats documents as text. Pretty output is an indented JSON
// array with each document's fields in stored order; compact output is
// one JSON document per line.
func Render(docs []*document.Document, pretty bool) (string, error) {
	if len(docs) == 0 {
		return EmptyMessage, nil
	}

	if pretty {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding documents: %w", err)
		}
		return string(data), nil
	}

	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("encoding document: %w", err)
		}
		sb.Write(data)
	}
	return sb.String(), nil
}
