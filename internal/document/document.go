// Package document provides the JSON document value type used by the store.
//
// A Document is a JSON object that preserves key insertion order through
// decode and encode, so output is stable and round-trips are byte-faithful.
// Field values are the JSON types: string, json.Number, bool, nil, nested
// *Document, or []any.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is an ordered mapping from field names to JSON values.
type Document struct {
	keys   []string
	values map[string]any
}

// New creates an empty document.
func New() *Document {
	return &Document{values: make(map[string]any)}
}

// Len returns the number of fields.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the field names in insertion order.
// The returned slice must not be modified.
func (d *Document) Keys() []string {
	return d.keys
}

// Get returns the value for a field and whether the field exists.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set sets a field value, appending the key if it is new.
func (d *Document) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Merge copies every field of patch into d, overwriting existing keys
// and appending new ones in patch order.
func (d *Document) Merge(patch *Document) {
	for _, k := range patch.keys {
		d.Set(k, patch.values[k])
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := New()
	for _, k := range d.keys {
		out.Set(k, cloneValue(d.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Document:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the document with fields in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording key order.
// Numbers are kept as json.Number so integer values survive round-trips.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("document must be a JSON object, got %v", tok)
	}

	d.keys = nil
	d.values = make(map[string]any)
	return d.decodeFields(dec)
}

// decodeFields consumes object members up to and including the closing brace.
func (d *Document) decodeFields(dec *json.Decoder) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return err
		}
		d.Set(key, val)
	}
	// Closing '}'
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// decodeValue decodes the next JSON value, turning objects into *Document.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			doc := New()
			if err := doc.decodeFields(dec); err != nil {
				return nil, err
			}
			return doc, nil
		case '[':
			arr := []any{}
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, elem)
			}
			// Closing ']'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return tok, nil
	}
}

// FromJSON parses data as a single JSON object.
func FromJSON(data []byte) (*Document, error) {
	doc := New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Equal reports whether two documents have the same fields in the same
// order with equal values. Numbers compare numerically.
func (d *Document) Equal(other *Document) bool {
	if d.Len() != other.Len() {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !valueEqual(d.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case *Document:
		bv, ok := b.(*Document)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case json.Number:
		af, err := av.Float64()
		if err != nil {
			return false
		}
		bf, ok := NumberValue(b)
		return ok && af == bf
	default:
		if bn, ok := b.(json.Number); ok {
			af, aok := NumberValue(a)
			bf, err := bn.Float64()
			return aok && err == nil && af == bf
		}
		return a == b
	}
}

// NumberValue returns the float64 value of v if it is a JSON number.
func NumberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
