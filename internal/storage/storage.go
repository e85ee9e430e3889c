package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Record names, one per store.
const (
	BookmarksRecord     = "newtab-bookmarks"
	QuickLinksRecord    = "newtab-quicklinks"
	TrashRecord         = "newtab-trash"
	SettingsRecord      = "newtab-settings"
	SearchHistoryRecord = "newtab-search-history"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
	BackendMemory = "memory"
)

var (
	ErrInvalidName    = errors.New("invalid record name")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Storage persists named JSON records.
type Storage interface {
	// Load decodes the record into v. It reports false, leaving v
	// untouched, when the record has never been saved.
	Load(name string, v any) (bool, error)
	// Save replaces the record with the JSON encoding of v.
	Save(name string, v any) error
	// Quarantine moves an unreadable record to CorruptName(name),
	// replacing any earlier copy. A missing record is not an error.
	Quarantine(name string) error
}

// CorruptName is where Quarantine keeps an unreadable record.
func CorruptName(name string) string {
	return name + ".corrupt"
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// JSONStorage implements Storage with one JSON file per record.
type JSONStorage struct {
	dir string
}

// NewJSONStorage creates a new JSONStorage rooted at dir.
func NewJSONStorage(dir string) *JSONStorage {
	return &JSONStorage{dir: dir}
}

// Path returns the file path of a record.
func (s *JSONStorage) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads a record from its JSON file.
// A missing file is not an error.
func (s *JSONStorage) Load(name string, v any) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// Save writes a record to its JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(name string, v any) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// Write next to the target and rename so a crash never leaves half a record.
	tmp := s.Path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path(name))
}

// Quarantine renames the record file to <name>.corrupt.
func (s *JSONStorage) Quarantine(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	err := os.Rename(s.Path(name), filepath.Join(s.dir, CorruptName(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Open opens the storage backend by name, rooted at dir.
func Open(backend, dir string) (Storage, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStorage(dir), nil
	case BackendSQLite:
		return NewSQLiteStorage(filepath.Join(dir, "tabzero.db"))
	case BackendDiskv:
		return NewDiskvStorage(filepath.Join(dir, "records")), nil
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
