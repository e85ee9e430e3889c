package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Snapshot is the full bookmarks + categories state. It is the unit of
// import, export and remote backup.
type Snapshot struct {
	Bookmarks  []Bookmark `json:"bookmarks"`
	Categories []Category `json:"categories"`
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Bookmarks:  CloneBookmarks(s.Bookmarks),
		Categories: CloneCategories(s.Categories),
	}
}

// ErrInvalidSnapshot means bookmarks or categories is missing or not an array.
var ErrInvalidSnapshot = errors.New("invalid snapshot: bookmarks and categories must be arrays")

// snapshotShape keeps the raw fields so their JSON type can be checked
// before decoding.
type snapshotShape struct {
	Bookmarks  json.RawMessage `json:"bookmarks"`
	Categories json.RawMessage `json:"categories"`
}

// DecodeSnapshot decodes data into a Snapshot, rejecting documents whose
// bookmarks or categories are not JSON arrays. Other fields are ignored.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var shape snapshotShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if !isJSONArray(shape.Bookmarks) || !isJSONArray(shape.Categories) {
		return Snapshot{}, ErrInvalidSnapshot
	}

	snap := Snapshot{Bookmarks: []Bookmark{}, Categories: []Category{}}
	if err := json.Unmarshal(shape.Bookmarks, &snap.Bookmarks); err != nil {
		return Snapshot{}, fmt.Errorf("%w: bookmarks: %v", ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(shape.Categories, &snap.Categories); err != nil {
		return Snapshot{}, fmt.Errorf("%w: categories: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
