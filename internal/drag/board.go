package drag

import (
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
)

// BookmarkBoard drives the two drag domains of the bookmark board: the
// bookmark grid, which shows the filtered list, and the category tabs,
// which show the categories without "all".
type BookmarkBoard struct {
	store *store.BookmarkStore
	grid  Session
	tabs  Session
}

// NewBookmarkBoard creates a board over s.
func NewBookmarkBoard(s *store.BookmarkStore) *BookmarkBoard {
	return &BookmarkBoard{store: s}
}

// Grid exposes the grid drag state for rendering.
func (b *BookmarkBoard) Grid() *Session { return &b.grid }

// Tabs exposes the tab drag state for rendering.
func (b *BookmarkBoard) Tabs() *Session { return &b.tabs }

// StartBookmarkDrag begins dragging the visible bookmark at index and
// returns the payload to put on the drag channel.
func (b *BookmarkBoard) StartBookmarkDrag(index int) (Payload, bool) {
	visible := b.store.VisibleBookmarks()
	if !inRange(index, len(visible)) {
		return Payload{}, false
	}
	bm := visible[index]
	b.grid.Start(index, bm.ID)
	return BookmarkPayload(bm), true
}

// OverBookmark hovers the visible bookmark at index.
func (b *BookmarkBoard) OverBookmark(index int) bool {
	return b.grid.Over(index)
}

// DropOnBookmark drops the dragged bookmark onto the visible bookmark at
// index, reordering the full list.
func (b *BookmarkBoard) DropOnBookmark(index int) Outcome {
	defer b.grid.End()

	from, ok := b.grid.DragIndex()
	if !ok || from == index {
		return None
	}

	full := b.store.Bookmarks()
	visible := b.store.VisibleBookmarks()
	if !inRange(from, len(visible)) || !inRange(index, len(visible)) {
		return None
	}

	b.store.ReorderBookmarks(MoveVisible(full, visible, from, index, func(bm model.Bookmark) string {
		return bm.ID
	}))
	return Reordered
}

// EndBookmarkDrag ends a grid drag without dropping.
func (b *BookmarkBoard) EndBookmarkDrag() {
	b.grid.End()
}

// StartCategoryDrag begins dragging the category tab at index.
func (b *BookmarkBoard) StartCategoryDrag(index int) (Payload, bool) {
	tabs := b.store.ManageableCategories()
	if !inRange(index, len(tabs)) {
		return Payload{}, false
	}
	b.tabs.Start(index, tabs[index].ID)
	return CategoryPayload(tabs[index].ID), true
}

// OverCategory hovers the tab at index.
func (b *BookmarkBoard) OverCategory(index int) bool {
	return b.tabs.Over(index)
}

// DropOnCategory handles a drop on the tab at index. A bookmark payload
// moves the bookmark into that category. A category payload reorders the
// tabs. Anything else is ignored.
func (b *BookmarkBoard) DropOnCategory(index int, data string) Outcome {
	defer b.tabs.End()

	tabs := b.store.ManageableCategories()
	if !inRange(index, len(tabs)) {
		return None
	}
	target := tabs[index]

	p, err := Decode(data)
	if err != nil {
		return None
	}

	switch p.Kind {
	case KindBookmark:
		bm, ok := b.store.BookmarkByID(p.ID)
		if !ok || bm.CategoryID == target.ID {
			return None
		}
		b.store.UpdateBookmark(p.ID, model.BookmarkPatch{CategoryID: model.Ptr(target.ID)})
		return Recategorized

	case KindCategory:
		from, ok := b.tabs.DragIndex()
		if !ok || from == index || !inRange(from, len(tabs)) || tabs[from].ID != p.ID {
			return None
		}
		b.store.ReorderCategories(MoveVisible(b.store.Categories(), tabs, from, index, func(c model.Category) string {
			return c.ID
		}))
		return Reordered

	case KindExternal:
		return None
	}
	return None
}

// EndCategoryDrag ends a tab drag without dropping.
func (b *BookmarkBoard) EndCategoryDrag() {
	b.tabs.End()
}
