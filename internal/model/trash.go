package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TrashItemType identifies what a TrashItem holds.
type TrashItemType string

const (
	TrashBookmark TrashItemType = "bookmark"
	TrashCategory TrashItemType = "category"
)

var ErrUnknownTrashType = errors.New("unknown trash item type")

// TrashItem is a soft-deleted bookmark or category.
// It owns a copy of the entity taken at deletion time; exactly one of
// Bookmark and Category is set, matching Type.
type TrashItem struct {
	ID        string
	Type      TrashItemType
	Bookmark  *Bookmark
	Category  *Category
	DeletedAt Timestamp

	// RelatedBookmarks holds the bookmarks of a deleted category,
	// so restoring the category restores them too.
	RelatedBookmarks []Bookmark
}

// NewBookmarkTrashItem wraps a copy of b for the trash.
func NewBookmarkTrashItem(b Bookmark, deletedAt Timestamp) TrashItem {
	c := b.Clone()
	return TrashItem{
		ID:        "trash-" + GenerateUUID(),
		Type:      TrashBookmark,
		Bookmark:  &c,
		DeletedAt: deletedAt,
	}
}

// NewCategoryTrashItem wraps a copy of c and its bookmarks for the trash.
func NewCategoryTrashItem(c Category, related []Bookmark, deletedAt Timestamp) TrashItem {
	cc := c
	return TrashItem{
		ID:               "trash-" + GenerateUUID(),
		Type:             TrashCategory,
		Category:         &cc,
		DeletedAt:        deletedAt,
		RelatedBookmarks: CloneBookmarks(related),
	}
}

// Title returns a display name for the trashed entity.
func (t TrashItem) Title() string {
	switch t.Type {
	case TrashBookmark:
		if t.Bookmark != nil {
			return t.Bookmark.Title
		}
	case TrashCategory:
		if t.Category != nil {
			return t.Category.Name
		}
	}
	return ""
}

// Clone returns a deep copy of the item.
func (t TrashItem) Clone() TrashItem {
	if t.Bookmark != nil {
		b := t.Bookmark.Clone()
		t.Bookmark = &b
	}
	if t.Category != nil {
		c := *t.Category
		t.Category = &c
	}
	if t.RelatedBookmarks != nil {
		t.RelatedBookmarks = CloneBookmarks(t.RelatedBookmarks)
	}
	return t
}

// trashItemJSON is the wire shape: the entity sits under "data".
type trashItemJSON struct {
	ID               string          `json:"id"`
	Type             TrashItemType   `json:"type"`
	Data             json.RawMessage `json:"data"`
	DeletedAt        Timestamp       `json:"deletedAt"`
	RelatedBookmarks []Bookmark      `json:"relatedBookmarks,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t TrashItem) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch t.Type {
	case TrashBookmark:
		data, err = json.Marshal(t.Bookmark)
	case TrashCategory:
		data, err = json.Marshal(t.Category)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrashType, t.Type)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(trashItemJSON{
		ID:               t.ID,
		Type:             t.Type,
		Data:             data,
		DeletedAt:        t.DeletedAt,
		RelatedBookmarks: t.RelatedBookmarks,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TrashItem) UnmarshalJSON(raw []byte) error {
	var w trashItemJSON
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}

	item := TrashItem{
		ID:               w.ID,
		Type:             w.Type,
		DeletedAt:        w.DeletedAt,
		RelatedBookmarks: w.RelatedBookmarks,
	}

	switch w.Type {
	case TrashBookmark:
		var b Bookmark
		if err := json.Unmarshal(w.Data, &b); err != nil {
			return fmt.Errorf("trash item %s: %w", w.ID, err)
		}
		item.Bookmark = &b
	case TrashCategory:
		var c Category
		if err := json.Unmarshal(w.Data, &c); err != nil {
			return fmt.Errorf("trash item %s: %w", w.ID, err)
		}
		item.Category = &c
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTrashType, w.Type)
	}

	*t = item
	return nil
}

// TrashSettings governs whether deletions produce trash items and how
// long they are kept.
type TrashSettings struct {
	Enabled           bool `json:"enabled"`
	RecycleBookmarks  bool `json:"recycleBookmarks"`
	RecycleCategories bool `json:"recycleCategories"`
	RetentionDays     int  `json:"retentionDays"`
}

// DefaultTrashSettings returns the trash defaults.
func DefaultTrashSettings() TrashSettings {
	return TrashSettings{
		Enabled:           true,
		RecycleBookmarks:  true,
		RecycleCategories: true,
		RetentionDays:     15,
	}
}

// Accepts reports whether an item of the given type would be kept.
func (s TrashSettings) Accepts(typ TrashItemType) bool {
	if !s.Enabled {
		return false
	}
	switch typ {
	case TrashBookmark:
		return s.RecycleBookmarks
	case TrashCategory:
		return s.RecycleCategories
	default:
		return false
	}
}

// RetentionMillis is the retention window in milliseconds.
func (s TrashSettings) RetentionMillis() int64 {
	return int64(s.RetentionDays) * MillisPerDay
}

// Expired reports whether item is past retention at now.
func (s TrashSettings) Expired(item TrashItem, now Timestamp) bool {
	return int64(now-item.DeletedAt) >= s.RetentionMillis()
}

// TrashSettingsPatch is a partial update for TrashSettings.
type TrashSettingsPatch struct {
	Enabled           *bool
	RecycleBookmarks  *bool
	RecycleCategories *bool
	RetentionDays     *int
}

// Apply merges the patch into s. A non-positive retention is ignored.
func (p TrashSettingsPatch) Apply(s *TrashSettings) {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.RecycleBookmarks != nil {
		s.RecycleBookmarks = *p.RecycleBookmarks
	}
	if p.RecycleCategories != nil {
		s.RecycleCategories = *p.RecycleCategories
	}
	if p.RetentionDays != nil && *p.RetentionDays > 0 {
		s.RetentionDays = *p.RetentionDays
	}
}
