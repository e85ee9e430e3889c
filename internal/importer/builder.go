package importer

import (
	"time"

	"github.com/nikbrunner/tabzero/internal/model"
)

// snapshotBuilder collects links and creates one category per distinct
// name, in order of first use.
type snapshotBuilder struct {
	now        time.Time
	categories map[string]string // name -> id
	snap       model.Snapshot
}

func newSnapshotBuilder(now time.Time) *snapshotBuilder {
	return &snapshotBuilder{
		now:        now,
		categories: make(map[string]string),
		snap: model.Snapshot{
			Bookmarks:  []model.Bookmark{},
			Categories: []model.Category{},
		},
	}
}

func (b *snapshotBuilder) categoryID(name string) string {
	if id, ok := b.categories[name]; ok {
		return id
	}
	c := model.NewCategory(model.NewCategoryParams{
		Name:  name,
		Order: firstCategoryOrder + len(b.snap.Categories),
	})
	b.categories[name] = c.ID
	b.snap.Categories = append(b.snap.Categories, c)
	return c.ID
}

// add appends a bookmark. createdAt nil means now.
func (b *snapshotBuilder) add(category, title, url, icon string, createdAt *time.Time) {
	bm := model.NewBookmark(model.NewBookmarkParams{
		Title:      title,
		URL:        url,
		Icon:       icon,
		Color:      ImportedColor,
		CategoryID: b.categoryID(category),
	})
	// Keep the link as exported, schemes like place: included.
	bm.URL = url
	bm.CreatedAt = model.NewTimestamp(b.now)
	if createdAt != nil {
		bm.CreatedAt = model.NewTimestamp(*createdAt)
	}
	b.snap.Bookmarks = append(b.snap.Bookmarks, bm)
}

func (b *snapshotBuilder) snapshot() model.Snapshot {
	return b.snap
}
