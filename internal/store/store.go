package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fridgeplan/internal/models"
)

// MalformedRecordError reports a persisted record that could not be
// decoded, typically because its expiry date survives neither the strict
// ISO parse nor the generic fallback. Load aborts rather than guessing.
type MalformedRecordError struct {
	Index int
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed inventory record at index %d: %v", e.Index, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Store reads and writes the inventory backing file. It is the only
// component that touches durable storage; there is no caching layer, so
// every Load re-reads from disk.
type Store struct {
	path string
}

// New creates a Store for the backing file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full inventory from the backing file. A missing or empty
// file yields an empty inventory, not an error. Every record's expiry is
// normalized to a calendar date on the way in; a record that cannot be
// decoded fails the whole load with a *MalformedRecordError.
func (s *Store) Load() ([]models.Ingredient, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Ingredient{}, nil
		}
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Ingredient{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file: %w", err)
	}

	inventory := make([]models.Ingredient, 0, len(raw))
	for i, record := range raw {
		var item models.Ingredient
		if err := json.Unmarshal(record, &item); err != nil {
			return nil, &MalformedRecordError{Index: i, Err: err}
		}
		inventory = append(inventory, item)
	}
	return inventory, nil
}

// Save serializes the full inventory to the backing file, overwriting the
// previous contents. Non-ASCII text is preserved verbatim and dates render
// as ISO calendar-date strings. The write goes to a temp file in the same
// directory followed by a rename, so a crash mid-write cannot corrupt a
// previously valid file.
func (s *Store) Save(inventory []models.Ingredient) error {
	if inventory == nil {
		inventory = []models.Ingredient{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inventory); err != nil {
		return fmt.Errorf("failed to serialize inventory: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".inventory-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace inventory file: %w", err)
	}
	return nil
}
