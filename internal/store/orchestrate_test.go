package store_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/store"
)

func newStores(t *testing.T) (*store.BookmarkStore, *store.TrashStore) {
	t.Helper()
	c := newClock()
	p := store.Params{Storage: storage.NewMemoryStorage(), Now: c.Now}
	bs := store.NewBookmarkStore(p)
	bs.ReplaceAll(model.Snapshot{
		Categories: []model.Category{{ID: "dev", Name: "Dev", Order: 1}, {ID: "news", Name: "News", Order: 2}},
		Bookmarks: []model.Bookmark{
			{ID: "b1", Title: "Go", URL: "https://go.dev", Color: "#000", CategoryID: "dev", CreatedAt: 100, VisitCount: 3},
			{ID: "b2", Title: "HN", URL: "https://news.ycombinator.com", CategoryID: "news"},
			{ID: "b3", Title: "Rust", URL: "https://rust-lang.org", CategoryID: "dev"},
		},
	})
	return bs, store.NewTrashStore(p)
}

func TestDeleteWithTrash_BookmarkRoundTrip(t *testing.T) {
	bs, ts := newStores(t)
	original, _ := bs.BookmarkByID("b1")

	result := store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashBookmark, ID: "b1"})

	assert.Assert(t, result.Found)
	assert.Assert(t, result.Trashed)
	_, ok := bs.BookmarkByID("b1")
	assert.Assert(t, !ok)

	assert.Assert(t, store.Restore(bs, ts, result.TrashID))

	restored, ok := bs.BookmarkByID("b1")
	assert.Assert(t, ok)
	assert.DeepEqual(t, restored, original)
	assert.Equal(t, len(ts.Items()), 0)
}

func TestDeleteWithTrash_TrashDisabledDeletesPermanently(t *testing.T) {
	bs, ts := newStores(t)
	ts.UpdateSettings(model.TrashSettingsPatch{Enabled: model.Ptr(false)})

	result := store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashBookmark, ID: "b1"})

	assert.Assert(t, result.Found)
	assert.Assert(t, !result.Trashed)
	assert.Equal(t, result.TrashID, "")
	assert.Equal(t, len(ts.Items()), 0)
	assert.DeepEqual(t, bookmarkIDs(bs.Bookmarks()), []string{"b2", "b3"})
}

func TestDeleteWithTrash_CategoryCarriesBookmarks(t *testing.T) {
	bs, ts := newStores(t)
	bs.SetActiveCategory("dev")

	result := store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashCategory, ID: "dev"})

	assert.Assert(t, result.Trashed)
	assert.Equal(t, result.RemovedBookmarks, 2)
	assert.Equal(t, bs.ActiveCategory(), model.AllCategoryID)
	assert.DeepEqual(t, bookmarkIDs(bs.Bookmarks()), []string{"b2"})

	item, ok := ts.Item(result.TrashID)
	assert.Assert(t, ok)
	assert.DeepEqual(t, bookmarkIDs(item.RelatedBookmarks), []string{"b1", "b3"})

	assert.Assert(t, store.Restore(bs, ts, result.TrashID))
	assert.DeepEqual(t, categoryIDs(bs.Categories()), []string{"news", "dev"})
	assert.DeepEqual(t, bookmarkIDs(bs.Bookmarks()), []string{"b2", "b1", "b3"})
}

func TestDeleteWithTrash_MissingTargets(t *testing.T) {
	bs, ts := newStores(t)

	for _, target := range []store.Target{
		{Kind: model.TrashBookmark, ID: "missing"},
		{Kind: model.TrashCategory, ID: "missing"},
		{Kind: model.TrashCategory, ID: model.AllCategoryID},
		{Kind: "folder", ID: "b1"},
	} {
		result := store.DeleteWithTrash(bs, ts, target)
		assert.Assert(t, !result.Found, "target %+v", target)
	}
	assert.Equal(t, len(bs.Bookmarks()), 3)
	assert.Equal(t, len(ts.Items()), 0)
}

func TestRestore_SkipsExistingIDs(t *testing.T) {
	bs, ts := newStores(t)
	result := store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashBookmark, ID: "b1"})
	bs.AddBookmark(model.Bookmark{ID: "b1", Title: "Re-added"})

	assert.Assert(t, store.Restore(bs, ts, result.TrashID))

	assert.Equal(t, len(bs.BookmarksInCategory("dev")), 1)
	b, _ := bs.BookmarkByID("b1")
	assert.Equal(t, b.Title, "Re-added")
}

func TestRestoreAllAndGroup(t *testing.T) {
	bs, ts := newStores(t)
	store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashBookmark, ID: "b1"})
	store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashBookmark, ID: "b2"})

	groups := store.GroupByDay(ts.Items(), newClock().Now())
	assert.Equal(t, len(groups), 1)
	assert.Equal(t, store.RestoreGroup(bs, ts, groups[0]), 2)
	assert.Equal(t, len(bs.Bookmarks()), 3)

	store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashCategory, ID: "news"})
	store.DeleteWithTrash(bs, ts, store.Target{Kind: model.TrashBookmark, ID: "b3"})
	assert.Equal(t, store.RestoreAll(bs, ts), 2)
	assert.Equal(t, len(bs.Bookmarks()), 3)
	assert.Equal(t, len(ts.Items()), 0)
	assert.Equal(t, store.RestoreAll(bs, ts), 0)
}
