package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jdb-tool/jdb/internal/document"
)

// DecodeDocuments parses an insert payload: a single JSON object or a
// non-empty JSON array of objects. Anything else is ErrInvalidDocument.
func DecodeDocuments(data []byte) ([]*document.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: payload is empty", ErrInvalidDocument)
	}

	switch trimmed[0] {
	case '{':
		doc, err := document.FromJSON(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return []*document.Document{doc}, nil
	case '[':
		var docs []*document.Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if len(docs) == 0 {
			return nil, fmt.Errorf("%w: array is empty", ErrInvalidDocument)
		}
		for i, doc := range docs {
			if doc == nil {
				return nil, fmt.Errorf("%w: element %d is null", ErrInvalidDocument, i)
			}
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("%w: payload must be a JSON object or an array of objects", ErrInvalidDocument)
	}
}

// DecodeDocument parses an update patch, which must be a single JSON object.
func DecodeDocument(data []byte) (*document.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: patch must be a JSON object", ErrInvalidDocument)
	}
	doc, err := document.FromJSON(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}
