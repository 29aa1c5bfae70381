// Package export converts a document collection into analysis-friendly
// formats: a SQLite database, CSV, or JSONL. Export is one-way and
// strictly downstream of the store; the JSON file stays the source of
// truth.
package export

import (
	"encoding/json"
	"strconv"

	"github.com/jdb-tool/jdb/internal/store"
)

// ColumnType is a SQLite column affinity.
type ColumnType string

const (
	ColumnInteger ColumnType = "INTEGER"
	ColumnReal    ColumnType = "REAL"
	ColumnText    ColumnType = "TEXT"
)

// Column describes one inferred column.
type Column struct {
	Name string
	Type ColumnType
}

// InferColumns derives the column set from the union of top-level
// document fields, in first-seen order. Affinity is the narrowest type
// that fits every value: all-integer fields are INTEGER, numeric fields
// with fractions are REAL, everything else is TEXT. Booleans are stored
// as 0/1; nested objects and arrays as JSON text; nulls don't widen.
func InferColumns(entries []store.Entry) []Column {
	var order []string
	types := make(map[string]ColumnType)

	for _, e := range entries {
		for _, key := range e.Doc.Keys() {
			value, _ := e.Doc.Get(key)
			vt, hasType := valueType(value)
			if !hasType {
				if _, seen := types[key]; !seen {
					order = append(order, key)
					types[key] = ""
				}
				continue
			}
			current, seen := types[key]
			if !seen {
				order = append(order, key)
				types[key] = vt
				continue
			}
			types[key] = widen(current, vt)
		}
	}

	cols := make([]Column, 0, len(order))
	for _, name := range order {
		t := types[name]
		if t == "" {
			t = ColumnText // field only ever held null
		}
		cols = append(cols, Column{Name: name, Type: t})
	}
	return cols
}

// valueType maps a document value to its column affinity.
// Nulls report no type.
func valueType(v any) (ColumnType, bool) {
	switch n := v.(type) {
	case nil:
		return "", false
	case json.Number:
		if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return ColumnInteger, true
		}
		return ColumnReal, true
	case bool:
		return ColumnInteger, true
	default:
		return ColumnText, true
	}
}

// widen combines two affinities for the same field.
func widen(a, b ColumnType) ColumnType {
	if a == "" {
		return b
	}
	if a == b {
		return a
	}
	if (a == ColumnInteger && b == ColumnReal) || (a == ColumnReal && b == ColumnInteger) {
		return ColumnReal
	}
	return ColumnText
}
