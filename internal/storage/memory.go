package storage

import (
	"encoding/json"
	"sync"
)

// MemoryStorage keeps records in memory. Records are stored encoded,
// so callers never share state with what they saved.
type MemoryStorage struct {
	mu      sync.Mutex
	records map[string][]byte
	saves   int
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string][]byte)}
}

// Load decodes a record if present.
func (s *MemoryStorage) Load(name string, v any) (bool, error) {
	s.mu.Lock()
	data, ok := s.records[name]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

// Save encodes and keeps a record.
func (s *MemoryStorage) Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[name] = data
	s.saves++
	s.mu.Unlock()
	return nil
}

// Quarantine moves the record to its corrupt name.
func (s *MemoryStorage) Quarantine(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.records[name]
	if !ok {
		return nil
	}
	s.records[CorruptName(name)] = data
	delete(s.records, name)
	return nil
}

// Put stores raw bytes under name, bypassing encoding.
func (s *MemoryStorage) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[name] = append([]byte(nil), data...)
}

// Raw returns the encoded record, or nil.
func (s *MemoryStorage) Raw(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[name]
}

// Saves returns how many times Save has succeeded.
func (s *MemoryStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
