package store

import (
	"strings"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

const (
	// MaxHistoryItems caps the search history.
	MaxHistoryItems = 50
	// DefaultRecentLimit is what Recent returns for a non-positive limit.
	DefaultRecentLimit = 10
)

// HistoryItem is one submitted search.
type HistoryItem struct {
	ID        string          `json:"id"`
	Query     string          `json:"query"`
	EngineID  string          `json:"engineId"`
	Timestamp model.Timestamp `json:"timestamp"`
}

type historyRecord struct {
	History  []HistoryItem `json:"history"`
	MaxItems int           `json:"maxItems"`
}

// SearchHistoryStore remembers recent search queries, newest first.
type SearchHistoryStore struct {
	base
	rec historyRecord
}

// NewSearchHistoryStore loads the search history record.
func NewSearchHistoryStore(p Params) *SearchHistoryStore {
	s := &SearchHistoryStore{base: newBase(storage.SearchHistoryRecord, p)}

	rec := historyRecord{MaxItems: MaxHistoryItems}
	if !s.load(&rec) {
		rec = historyRecord{MaxItems: MaxHistoryItems}
	}
	if rec.History == nil {
		rec.History = []HistoryItem{}
	}
	if rec.MaxItems <= 0 {
		rec.MaxItems = MaxHistoryItems
	}
	s.rec = rec
	return s
}

// Add records query. Blank queries are ignored and an earlier entry
// with the same text, ignoring case, is replaced.
func (s *SearchHistoryStore) Add(query, engineID string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	history := []HistoryItem{{
		ID:        "sh-" + model.GenerateUUID(),
		Query:     query,
		EngineID:  engineID,
		Timestamp: now,
	}}
	for _, item := range s.rec.History {
		if !strings.EqualFold(item.Query, query) {
			history = append(history, item)
		}
	}
	if len(history) > s.rec.MaxItems {
		history = history[:s.rec.MaxItems]
	}

	s.rec.History = history
	s.persist(s.rec)
}

// Remove deletes one entry.
func (s *SearchHistoryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.History, id, func(h HistoryItem) string { return h.ID })
	if i < 0 {
		return
	}
	s.rec.History = append(s.rec.History[:i:i], s.rec.History[i+1:]...)
	s.persist(s.rec)
}

// Clear deletes all entries.
func (s *SearchHistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.History = []HistoryItem{}
	s.persist(s.rec)
}

// Recent returns up to limit entries, newest first.
func (s *SearchHistoryStore) Recent(limit int) []HistoryItem {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(limit, len(s.rec.History))
	return append([]HistoryItem{}, s.rec.History[:n]...)
}
