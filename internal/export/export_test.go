package export

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jdb-tool/jdb/internal/document"
	"github.com/jdb-tool/jdb/internal/store"
)

func mustEntries(t *testing.T, docs ...string) []store.Entry {
	t.Helper()
	entries := make([]store.Entry, len(docs))
	for i, data := range docs {
		doc, err := document.FromJSON([]byte(data))
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", data, err)
		}
		entries[i] = store.Entry{ID: i + 1, Doc: doc}
	}
	return entries
}

func TestInferColumns(t *testing.T) {
	entries := mustEntries(t,
		`{"name":"john","age":30,"score":9.5,"active":true}`,
		`{"name":"jane","age":25,"tags":["a"]}`,
	)

	cols := InferColumns(entries)
	want := map[string]ColumnType{
		"name":   ColumnText,
		"age":    ColumnInteger,
		"score":  ColumnReal,
		"active": ColumnInteger,
		"tags":   ColumnText,
	}
	if len(cols) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(cols))
	}
	// First-seen order.
	order := []string{"name", "age", "score", "active", "tags"}
	for i, col := range cols {
		if col.Name != order[i] {
			t.Errorf("cols[%d] = %q, want %q", i, col.Name, order[i])
		}
		if col.Type != want[col.Name] {
			t.Errorf("column %q type = %s, want %s", col.Name, col.Type, want[col.Name])
		}
	}
}

func TestInferColumnsWidening(t *testing.T) {
	entries := mustEntries(t,
		`{"x":1,"y":1}`,
		`{"x":1.5,"y":"text"}`,
	)
	cols := InferColumns(entries)
	types := map[string]ColumnType{}
	for _, c := range cols {
		types[c.Name] = c.Type
	}
	if types["x"] != ColumnReal {
		t.Errorf("integer + real should widen to REAL, got %s", types["x"])
	}
	if types["y"] != ColumnText {
		t.Errorf("integer + string should widen to TEXT, got %s", types["y"])
	}
}

func TestInferColumnsNullOnly(t *testing.T) {
	entries := mustEntries(t, `{"note":null}`)
	cols := InferColumns(entries)
	if len(cols) != 1 || cols[0].Type != ColumnText {
		t.Errorf("null-only field should default to TEXT, got %v", cols)
	}
}

func TestGenerateDDL(t *testing.T) {
	ddl := GenerateDDL([]Column{{Name: "name", Type: ColumnText}, {Name: "age", Type: ColumnInteger}})
	if !strings.Contains(ddl, "_id INTEGER PRIMARY KEY") {
		t.Errorf("missing primary key: %s", ddl)
	}
	if !strings.Contains(ddl, `"name" TEXT`) || !strings.Contains(ddl, `"age" INTEGER`) {
		t.Errorf("missing columns: %s", ddl)
	}
}

func TestToSQLite(t *testing.T) {
	entries := mustEntries(t,
		`{"name":"john","age":30,"meta":{"vip":true}}`,
		`{"name":"jane","age":25}`,
	)

	path := filepath.Join(t.TempDir(), "out.db")
	count, err := ToSQLite(path, entries)
	if err != nil {
		t.Fatalf("ToSQLite: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening exported database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}

	var name string
	var age int64
	if err := db.QueryRow("SELECT name, age FROM documents WHERE _id = 1").Scan(&name, &age); err != nil {
		t.Fatalf("selecting row: %v", err)
	}
	if name != "john" || age != 30 {
		t.Errorf("row 1 = %q, %d, want john, 30", name, age)
	}

	// Nested values land as JSON text.
	var meta string
	if err := db.QueryRow("SELECT meta FROM documents WHERE _id = 1").Scan(&meta); err != nil {
		t.Fatalf("selecting meta: %v", err)
	}
	if meta != `{"vip":true}` {
		t.Errorf("meta = %s, want {\"vip\":true}", meta)
	}

	// Missing fields are NULL.
	var metaNull sql.NullString
	if err := db.QueryRow("SELECT meta FROM documents WHERE _id = 2").Scan(&metaNull); err != nil {
		t.Fatalf("selecting meta for row 2: %v", err)
	}
	if metaNull.Valid {
		t.Errorf("meta for row 2 should be NULL, got %q", metaNull.String)
	}
}

func TestToSQLiteReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")

	if _, err := ToSQLite(path, mustEntries(t, `{"n":1}`, `{"n":2}`)); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if _, err := ToSQLite(path, mustEntries(t, `{"n":3}`)); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1 after replacement", n)
	}
}

func TestWriteCSV(t *testing.T) {
	entries := mustEntries(t,
		`{"name":"john","age":30}`,
		`{"name":"jane","note":null}`,
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "_id,name,age,note" {
		t.Errorf("header = %s", lines[0])
	}
	if lines[1] != "1,john,30," {
		t.Errorf("row 1 = %s", lines[1])
	}
	if lines[2] != "2,jane,," {
		t.Errorf("row 2 = %s", lines[2])
	}
}

func TestWriteJSONL(t *testing.T) {
	entries := mustEntries(t, `{"name":"john"}`, `{"name":"jane"}`)

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, entries); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	want := "{\"name\":\"john\"}\n{\"name\":\"jane\"}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
