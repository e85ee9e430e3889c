package drag_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/tabzero/internal/drag"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
	"github.com/nikbrunner/tabzero/internal/store"
)

func newBoard(t *testing.T) (*drag.BookmarkBoard, *store.BookmarkStore) {
	t.Helper()
	s := store.NewBookmarkStore(store.Params{Storage: storage.NewMemoryStorage()})
	s.ReplaceAll(model.Snapshot{
		Categories: []model.Category{
			{ID: "all", Name: "All"},
			{ID: "dev", Name: "Dev", Order: 1},
			{ID: "news", Name: "News", Order: 2},
			{ID: "tools", Name: "Tools", Order: 3},
		},
		Bookmarks: []model.Bookmark{
			{ID: "d1", CategoryID: "dev", URL: "https://go.dev"},
			{ID: "n1", CategoryID: "news"},
			{ID: "d2", CategoryID: "dev"},
			{ID: "n2", CategoryID: "news"},
			{ID: "d3", CategoryID: "dev"},
		},
	})
	return drag.NewBookmarkBoard(s), s
}

func idsOf(bs []model.Bookmark) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func catIDs(cs []model.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestBookmarkBoard_ReorderUnderFilter(t *testing.T) {
	board, s := newBoard(t)
	s.SetActiveCategory("dev")

	_, ok := board.StartBookmarkDrag(0)
	assert.Assert(t, ok)
	assert.Equal(t, board.DropOnBookmark(2), drag.Reordered)

	assert.DeepEqual(t, idsOf(s.VisibleBookmarks()), []string{"d2", "d3", "d1"})
	assert.DeepEqual(t, idsOf(s.Bookmarks()), []string{"n1", "d2", "n2", "d3", "d1"})
	assert.Assert(t, !board.Grid().Dragging())
}

func TestBookmarkBoard_SelfDropAndDragEndAreNoOps(t *testing.T) {
	board, s := newBoard(t)
	before := idsOf(s.Bookmarks())

	board.StartBookmarkDrag(1)
	assert.Assert(t, !board.OverBookmark(1))
	assert.Equal(t, board.DropOnBookmark(1), drag.None)

	board.StartBookmarkDrag(1)
	board.OverBookmark(3)
	board.EndBookmarkDrag()

	assert.Equal(t, board.DropOnBookmark(3), drag.None, "no drag in progress")
	assert.DeepEqual(t, idsOf(s.Bookmarks()), before)
}

func TestBookmarkBoard_BookmarkOnTabRecategorizes(t *testing.T) {
	board, s := newBoard(t)

	p, ok := board.StartBookmarkDrag(0)
	assert.Assert(t, ok)

	// Tabs are dev, news, tools.
	assert.Equal(t, board.DropOnCategory(2, p.Encode()), drag.Recategorized)
	b, _ := s.BookmarkByID("d1")
	assert.Equal(t, b.CategoryID, "tools")

	assert.Equal(t, board.DropOnCategory(2, "bookmark:d1"), drag.None, "already in tools")
	assert.Equal(t, board.DropOnCategory(1, "bookmark:d1"), drag.Recategorized)
	b, _ = s.BookmarkByID("d1")
	assert.Equal(t, b.CategoryID, "news")
}

func TestBookmarkBoard_CategoryReorderKeepsAll(t *testing.T) {
	board, s := newBoard(t)

	p, ok := board.StartCategoryDrag(2)
	assert.Assert(t, ok)
	assert.Equal(t, p, drag.CategoryPayload("tools"))
	assert.Equal(t, board.DropOnCategory(0, p.Encode()), drag.Reordered)

	assert.DeepEqual(t, catIDs(s.Categories()), []string{"all", "tools", "dev", "news"})
	assert.DeepEqual(t, catIDs(s.ManageableCategories()), []string{"tools", "dev", "news"})
}

func TestBookmarkBoard_CategoryDropIgnored(t *testing.T) {
	board, s := newBoard(t)
	before := catIDs(s.Categories())

	// No drag started on the tabs.
	assert.Equal(t, board.DropOnCategory(0, drag.CategoryPayload("tools").Encode()), drag.None)

	// Self drop.
	p, _ := board.StartCategoryDrag(1)
	assert.Equal(t, board.DropOnCategory(1, p.Encode()), drag.None)

	// External links do nothing on tabs.
	assert.Equal(t, board.DropOnCategory(0, drag.ExternalPayload("Go", "https://go.dev").Encode()), drag.None)

	// Garbage and out of range targets.
	assert.Equal(t, board.DropOnCategory(0, "nonsense"), drag.None)
	assert.Equal(t, board.DropOnCategory(7, "bookmark:d1"), drag.None)

	assert.DeepEqual(t, catIDs(s.Categories()), before)
}
