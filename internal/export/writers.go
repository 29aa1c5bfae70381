package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jdb-tool/jdb/internal/store"
)

// WriteCSV writes the collection as CSV with an _id column followed by
// the inferred columns. Missing fields and nulls are empty cells;
// nested values are JSON text.
func WriteCSV(w io.Writer, entries []store.Entry) error {
	cols := InferColumns(entries)

	cw := csv.NewWriter(w)
	header := []string{"_id"}
	for _, col := range cols {
		header = append(header, col.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		row := []string{fmt.Sprintf("%d", e.ID)}
		for _, col := range cols {
			value, ok := e.Doc.Get(col.Name)
			if !ok || value == nil {
				row = append(row, "")
				continue
			}
			cell, err := csvCell(value)
			if err != nil {
				return fmt.Errorf("document %d, field %q: %w", e.ID, col.Name, err)
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing document %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvCell(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case json.Number:
		return val.String(), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// WriteJSONL writes one document per line.
func WriteJSONL(w io.Writer, entries []store.Entry) error {
	for _, e := range entries {
		data, err := json.Marshal(e.Doc)
		if err != nil {
			return fmt.Errorf("encoding document %d: %w", e.ID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing document %d: %w", e.ID, err)
		}
	}
	return nil
}
