package store

import (
	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
)

// Target names the entity to delete.
type Target struct {
	Kind model.TrashItemType
	ID   string
}

// DeleteResult reports what DeleteWithTrash did.
type DeleteResult struct {
	// Found is false when the target did not exist; nothing changed.
	Found bool
	// Trashed is true when the trash kept a copy.
	Trashed bool
	TrashID string
	// RemovedBookmarks counts bookmarks deleted along with a category.
	RemovedBookmarks int
}

// DeleteWithTrash deletes a bookmark or category, first offering a copy
// to the trash. A category takes its bookmarks with it, and deleting the
// active category resets the filter to "all".
func DeleteWithTrash(bookmarks *BookmarkStore, trash *TrashStore, target Target) DeleteResult {
	switch target.Kind {
	case model.TrashBookmark:
		return deleteBookmark(bookmarks, trash, target.ID)
	case model.TrashCategory:
		return deleteCategory(bookmarks, trash, target.ID)
	default:
		return DeleteResult{}
	}
}

func deleteBookmark(bookmarks *BookmarkStore, trash *TrashStore, id string) DeleteResult {
	b, ok := bookmarks.BookmarkByID(id)
	if !ok {
		return DeleteResult{}
	}

	result := DeleteResult{Found: true, RemovedBookmarks: 1}
	item := model.NewBookmarkTrashItem(b, trash.now())
	if trash.AddToTrash(item) {
		result.Trashed = true
		result.TrashID = item.ID
	}

	bookmarks.DeleteBookmark(id)
	return result
}

func deleteCategory(bookmarks *BookmarkStore, trash *TrashStore, id string) DeleteResult {
	if id == model.AllCategoryID {
		return DeleteResult{}
	}
	c, ok := bookmarks.CategoryByID(id)
	if !ok {
		return DeleteResult{}
	}

	related := bookmarks.BookmarksInCategory(id)
	result := DeleteResult{Found: true, RemovedBookmarks: len(related)}
	item := model.NewCategoryTrashItem(c, related, trash.now())
	if trash.AddToTrash(item) {
		result.Trashed = true
		result.TrashID = item.ID
	}

	bookmarks.DeleteCategory(id)
	if bookmarks.ActiveCategory() == id {
		bookmarks.SetActiveCategory(model.AllCategoryID)
	}

	bookmarks.log.Debug("deleted category",
		logger.String("id", id),
		logger.Int("bookmarks", len(related)),
		logger.Bool("trashed", result.Trashed),
	)
	return result
}

// Restore takes an item out of the trash and puts its content back into
// the bookmark store: the category first, then its bookmarks. Entities
// whose id is already present are not added twice. It reports whether
// the item existed.
func Restore(bookmarks *BookmarkStore, trash *TrashStore, trashID string) bool {
	item, ok := trash.RestoreItem(trashID)
	if !ok {
		return false
	}

	switch item.Type {
	case model.TrashBookmark:
		if item.Bookmark != nil {
			restoreBookmark(bookmarks, *item.Bookmark)
		}
	case model.TrashCategory:
		if item.Category != nil {
			if _, exists := bookmarks.CategoryByID(item.Category.ID); !exists {
				bookmarks.AddCategory(*item.Category)
			}
		}
		for _, b := range item.RelatedBookmarks {
			restoreBookmark(bookmarks, b)
		}
	}
	return true
}

func restoreBookmark(bookmarks *BookmarkStore, b model.Bookmark) {
	if _, exists := bookmarks.BookmarkByID(b.ID); exists {
		return
	}
	bookmarks.AddBookmark(b)
}

// RestoreAll restores every trash item and returns how many it restored.
func RestoreAll(bookmarks *BookmarkStore, trash *TrashStore) int {
	return restoreEach(bookmarks, trash, trash.Items())
}

// RestoreGroup restores the items of one day group.
func RestoreGroup(bookmarks *BookmarkStore, trash *TrashStore, group DayGroup) int {
	return restoreEach(bookmarks, trash, group.Items)
}

func restoreEach(bookmarks *BookmarkStore, trash *TrashStore, items []model.TrashItem) int {
	restored := 0
	for _, item := range items {
		if Restore(bookmarks, trash, item.ID) {
			restored++
		}
	}
	return restored
}
