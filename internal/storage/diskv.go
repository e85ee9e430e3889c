package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStorage implements Storage on a diskv key-value directory,
// keeping recently used records in memory.
type DiskvStorage struct {
	d *diskv.Diskv
}

// NewDiskvStorage creates a DiskvStorage rooted at basePath.
func NewDiskvStorage(basePath string) *DiskvStorage {
	return &DiskvStorage{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Load reads a record by key.
func (s *DiskvStorage) Load(name string, v any) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	data, err := s.d.Read(name)
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

// Save writes a record by key.
func (s *DiskvStorage) Save(name string, v any) error {
	if err := validateName(name); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(name, data)
}

// Quarantine rewrites the record under its corrupt key and erases it.
func (s *DiskvStorage) Quarantine(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	data, err := s.d.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := s.d.Write(CorruptName(name), data); err != nil {
		return err
	}
	return s.d.Erase(name)
}
