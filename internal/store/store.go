// Package store implements the single-file JSON document store.
//
// The on-disk format is TinyDB's: a JSON object mapping table names to
// tables, where a table maps stringified integer document ids to
// documents. This tool operates on the "_default" table; any other
// tables present in the file are carried through writes untouched.
//
// Every mutating operation rewrites the whole file through a temp file
// and atomic rename, so a crash mid-write leaves the previous state
// intact. No file locking is done: concurrent external writers can race,
// which is an accepted constraint of the one-shot CLI model.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jdb-tool/jdb/internal/document"
)

// DefaultTable is the table the CLI reads and writes.
const DefaultTable = "_default"

// Matcher selects documents. *query.Condition implements it.
type Matcher interface {
	Match(*document.Document) bool
}

// Entry pairs a document with its store-assigned id.
type Entry struct {
	ID  int
	Doc *document.Document
}

// Store owns the in-memory collection for one command invocation.
type Store struct {
	path    string
	entries []Entry
	extra   map[string]json.RawMessage // tables other than _default, preserved verbatim
	nextID  int
}

// Open reads the database file at path.
//
// A missing file inside an existing directory yields an empty store; the
// file is created on the first persist. A missing directory is
// ErrNotFound, unreadable paths are ErrAccessDenied, and content that is
// not a JSON collection of documents is ErrCorrupt.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, dir)
		}
		return nil, fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}

	s := &Store{path: path, nextID: 1}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := s.load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// load parses file content into the store.
func (s *Store) load(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var tables map[string]json.RawMessage
	if err := json.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("%w: %s is not a JSON object of tables", ErrCorrupt, s.path)
	}

	for name, raw := range tables {
		if name != DefaultTable {
			if s.extra == nil {
				s.extra = make(map[string]json.RawMessage)
			}
			s.extra[name] = raw
			continue
		}

		var docs map[string]*document.Document
		if err := json.Unmarshal(raw, &docs); err != nil {
			return fmt.Errorf("%w: table %q in %s is not a mapping of documents", ErrCorrupt, name, s.path)
		}
		for key, doc := range docs {
			id, err := strconv.Atoi(key)
			if err != nil || id < 1 {
				return fmt.Errorf("%w: document id %q in %s is not a positive integer", ErrCorrupt, key, s.path)
			}
			if doc == nil {
				return fmt.Errorf("%w: document %q in %s is null", ErrCorrupt, key, s.path)
			}
			s.entries = append(s.entries, Entry{ID: id, Doc: doc})
		}
	}

	// Ids are assigned monotonically, so ascending id is insertion order.
	sort.Slice(s.entries, func(i, j int) bool { return s.entries[i].ID < s.entries[j].ID })
	if n := len(s.entries); n > 0 {
		s.nextID = s.entries[n-1].ID + 1
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of documents in the collection.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns every document in insertion order.
func (s *Store) All() []*document.Document {
	docs := make([]*document.Document, len(s.entries))
	for i, e := range s.entries {
		docs[i] = e.Doc
	}
	return docs
}

// Entries returns id/document pairs in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Insert appends documents, assigning fresh ids, and persists.
// It returns the assigned ids.
func (s *Store) Insert(docs ...*document.Document) ([]int, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: nothing to insert", ErrInvalidDocument)
	}
	for _, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("%w: document is null", ErrInvalidDocument)
		}
	}

	ids := make([]int, 0, len(docs))
	for _, doc := range docs {
		id := s.nextID
		s.nextID++
		s.entries = append(s.entries, Entry{ID: id, Doc: doc})
		ids = append(ids, id)
	}

	if err := s.persist(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Search returns all documents matched by m, in insertion order.
// An empty result is not an error.
func (s *Store) Search(m Matcher) []*document.Document {
	var matched []*document.Document
	for _, e := range s.entries {
		if m.Match(e.Doc) {
			matched = append(matched, e.Doc)
		}
	}
	return matched
}

// Update merges patch into every document matched by m and persists.
// It returns the number of documents updated; zero matches is a no-op,
// not an error, and leaves the file untouched.
func (s *Store) Update(m Matcher, patch *document.Document) (int, error) {
	if patch == nil {
		return 0, fmt.Errorf("%w: patch is null", ErrInvalidDocument)
	}

	count := 0
	for _, e := range s.entries {
		if m.Match(e.Doc) {
			e.Doc.Merge(patch)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	if err := s.persist(); err != nil {
		return 0, err
	}
	return count, nil
}

// Remove deletes every document matched by m and persists.
// It returns the number of documents removed.
func (s *Store) Remove(m Matcher) (int, error) {
	kept := s.entries[:0:0]
	count := 0
	for _, e := range s.entries {
		if m.Match(e.Doc) {
			count++
			continue
		}
		kept = append(kept, e)
	}
	if count == 0 {
		return 0, nil
	}

	s.entries = kept
	if err := s.persist(); err != nil {
		return 0, err
	}
	return count, nil
}

// Close releases the in-memory collection. Mutating operations persist
// synchronously, so this discards nothing that was reported as saved.
func (s *Store) Close() error {
	s.entries = nil
	s.extra = nil
	return nil
}

// persist serializes the collection and atomically replaces the backing
// file via temp file + rename in the same directory.
func (s *Store) persist() error {
	data, err := s.encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, dir)
		}
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, s.path)
		}
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	success = true
	return nil
}

// encode builds the on-disk JSON with documents keyed by ascending id.
func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(strconv.Quote(DefaultTable))
	buf.WriteString(": {")
	for i, e := range s.entries {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(e.ID)))
		buf.WriteString(": ")
		docJSON, err := json.Marshal(e.Doc)
		if err != nil {
			return nil, fmt.Errorf("encoding document %d: %w", e.ID, err)
		}
		buf.Write(docJSON)
	}
	buf.WriteByte('}')

	// Foreign tables, in stable order.
	names := make([]string, 0, len(s.extra))
	for name := range s.extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		buf.WriteString(", ")
		buf.WriteString(strconv.Quote(name))
		buf.WriteString(": ")
		buf.Write(s.extra[name])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
