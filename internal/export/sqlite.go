package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jdb-tool/jdb/internal/store"
)

// TableName is the table holding the exported documents.
const TableName = "documents"

// GenerateDDL generates the CREATE TABLE statement for the inferred
// columns. The store-assigned document id becomes the _id primary key.
func GenerateDDL(cols []Column) string {
	defs := []string{"_id INTEGER PRIMARY KEY"}
	for _, col := range cols {
		defs = append(defs, fmt.Sprintf("%q %s", col.Name, col.Type))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", TableName, strings.Join(defs, ",\n  "))
}

// ToSQLite writes the collection to a SQLite database at path,
// replacing any existing file. It returns the number of rows written.
func ToSQLite(path string, entries []store.Entry) (int, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("removing existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	cols := InferColumns(entries)
	if _, err := db.Exec(GenerateDDL(cols)); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	names := []string{"_id"}
	placeholders := []string{"?"}
	for _, col := range cols {
		names = append(names, strconv.Quote(col.Name))
		placeholders = append(placeholders, "?")
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		TableName,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "))

	stmt, err := db.Prepare(insert)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		values := []any{e.ID}
		for _, col := range cols {
			raw, ok := e.Doc.Get(col.Name)
			if !ok {
				values = append(values, nil)
				continue
			}
			v, err := sqliteValue(raw)
			if err != nil {
				return 0, fmt.Errorf("document %d, field %q: %w", e.ID, col.Name, err)
			}
			values = append(values, v)
		}
		if _, err := stmt.Exec(values...); err != nil {
			return 0, fmt.Errorf("inserting document %d: %w", e.ID, err)
		}
	}

	return len(entries), nil
}

// sqliteValue converts a document value to a driver-compatible value.
func sqliteValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return val, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		if i, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", val.String(), err)
		}
		return f, nil
	default:
		// Nested objects and arrays are stored as JSON text.
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encoding nested value: %w", err)
		}
		return string(data), nil
	}
}
