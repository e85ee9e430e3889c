package store

import (
	"encoding/json"
	"math"

	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

type trashRecord struct {
	Items    []model.TrashItem   `json:"items"`
	Settings model.TrashSettings `json:"settings"`
}

// storedTrashRecord defers item decoding so one bad item cannot take the
// settings and the other items down with it.
type storedTrashRecord struct {
	Items    []json.RawMessage   `json:"items"`
	Settings model.TrashSettings `json:"settings"`
}

// TrashStore holds soft-deleted bookmarks and categories until they are
// restored, purged or expire.
type TrashStore struct {
	base
	rec trashRecord
}

// NewTrashStore loads the trash record. Settings missing from the
// record fall back to the defaults.
func NewTrashStore(p Params) *TrashStore {
	s := &TrashStore{base: newBase(storage.TrashRecord, p)}

	rec := trashRecord{Items: []model.TrashItem{}, Settings: model.DefaultTrashSettings()}
	stored := storedTrashRecord{Settings: model.DefaultTrashSettings()}
	if s.load(&stored) {
		rec.Settings = stored.Settings
		skipped := 0
		for i, raw := range stored.Items {
			var item model.TrashItem
			if err := json.Unmarshal(raw, &item); err != nil {
				s.log.Warn("skipping unreadable trash item",
					logger.Int("index", i),
					logger.Error(err),
				)
				skipped++
				continue
			}
			rec.Items = append(rec.Items, item)
		}
		if skipped > 0 {
			// Keep the original for recovery and store what survived.
			s.setAside()
			s.persist(rec)
		}
	}
	if rec.Settings.RetentionDays <= 0 {
		rec.Settings.RetentionDays = model.DefaultTrashSettings().RetentionDays
	}
	s.rec = rec
	return s
}

// AddToTrash prepends item when the settings accept its type and
// reports whether it was kept.
func (s *TrashStore) AddToTrash(item model.TrashItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.rec.Settings.Accepts(item.Type) {
		return false
	}

	s.rec.Items = append([]model.TrashItem{item.Clone()}, s.rec.Items...)
	s.persist(s.rec)
	return true
}

// RemoveFromTrash purges one item.
func (s *TrashStore) RemoveFromTrash(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Items, id, trashID)
	if i < 0 {
		return
	}
	s.rec.Items = append(s.rec.Items[:i:i], s.rec.Items[i+1:]...)
	s.persist(s.rec)
}

// RestoreItem removes the item from the trash and hands it back.
// Putting it back into the bookmark store is up to the caller.
func (s *TrashStore) RestoreItem(id string) (model.TrashItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Items, id, trashID)
	if i < 0 {
		return model.TrashItem{}, false
	}
	item := s.rec.Items[i]
	s.rec.Items = append(s.rec.Items[:i:i], s.rec.Items[i+1:]...)
	s.persist(s.rec)
	return item, true
}

// ClearTrash purges everything.
func (s *TrashStore) ClearTrash() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rec.Items) == 0 {
		return
	}
	s.rec.Items = []model.TrashItem{}
	s.persist(s.rec)
}

// CleanExpiredItems drops items past retention and returns how many
// were removed. Safe to call on every view of the trash.
func (s *TrashStore) CleanExpiredItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := make([]model.TrashItem, 0, len(s.rec.Items))
	for _, item := range s.rec.Items {
		if !s.rec.Settings.Expired(item, now) {
			kept = append(kept, item)
		}
	}

	removed := len(s.rec.Items) - len(kept)
	if removed == 0 {
		return 0
	}
	s.rec.Items = kept
	s.log.Info("swept expired trash items", logger.Int("removed", removed))
	s.persist(s.rec)
	return removed
}

// GetExpiredItems returns the items past retention without removing them.
func (s *TrashStore) GetExpiredItems() []model.TrashItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var expired []model.TrashItem
	for _, item := range s.rec.Items {
		if s.rec.Settings.Expired(item, now) {
			expired = append(expired, item.Clone())
		}
	}
	return expired
}

// UpdateSettings merges patch into the settings. A retention change
// applies to items already in the trash.
func (s *TrashStore) UpdateSettings(patch model.TrashSettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.rec.Settings)
	s.persist(s.rec)
}

// Items returns a copy of the trash, newest first.
func (s *TrashStore) Items() []model.TrashItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TrashItem, len(s.rec.Items))
	for i, item := range s.rec.Items {
		out[i] = item.Clone()
	}
	return out
}

// Item finds a trash item by ID.
func (s *TrashStore) Item(id string) (model.TrashItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.rec.Items, id, trashID)
	if i < 0 {
		return model.TrashItem{}, false
	}
	return s.rec.Items[i].Clone(), true
}

// Settings returns the current trash settings.
func (s *TrashStore) Settings() model.TrashSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Settings
}

// RemainingDays is the number of whole days, rounded up, before item
// expires. It never goes below zero.
func (s *TrashStore) RemainingDays(item model.TrashItem) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expireAt := int64(item.DeletedAt) + s.rec.Settings.RetentionMillis()
	left := float64(expireAt-int64(s.now())) / model.MillisPerDay
	return max(0, int(math.Ceil(left)))
}
