package store

import (
	"sort"

	"github.com/nikbrunner/tabzero/internal/logger"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/storage"
)

// bookmarksRecord is the persisted shape of the bookmark store.
type bookmarksRecord struct {
	Bookmarks       []model.Bookmark `json:"bookmarks"`
	Categories      []model.Category `json:"categories"`
	ActiveCategory  string           `json:"activeCategory"`
	IsInitialized   bool             `json:"isInitialized"`
	MockDataVersion int              `json:"mockDataVersion"`
}

// BookmarkStore owns bookmarks, categories and the active category filter.
type BookmarkStore struct {
	base
	rec bookmarksRecord
}

// NewBookmarkStore loads the bookmarks record from p.Storage.
func NewBookmarkStore(p Params) *BookmarkStore {
	s := &BookmarkStore{base: newBase(storage.BookmarksRecord, p)}

	// A record saved without a seed version counts as current.
	rec := bookmarksRecord{
		ActiveCategory:  model.AllCategoryID,
		MockDataVersion: latestSeed(bookmarkSeeds),
	}
	if !s.load(&rec) {
		rec = bookmarksRecord{
			ActiveCategory:  model.AllCategoryID,
			MockDataVersion: latestSeed(bookmarkSeeds),
		}
	}
	if rec.Bookmarks == nil {
		rec.Bookmarks = []model.Bookmark{}
	}
	if rec.Categories == nil {
		rec.Categories = []model.Category{}
	}
	if rec.ActiveCategory == "" {
		rec.ActiveCategory = model.AllCategoryID
	}
	s.rec = rec
	return s
}

// AddBookmark appends b. URLs are not deduplicated.
func (s *BookmarkStore) AddBookmark(b model.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Bookmarks = append(s.rec.Bookmarks, b.Clone())
	s.persist(s.rec)
}

// UpdateBookmark merges patch into the bookmark with the given id.
func (s *BookmarkStore) UpdateBookmark(id string, patch model.BookmarkPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Bookmarks, id, bookmarkID)
	if i < 0 {
		return
	}
	patch.Apply(&s.rec.Bookmarks[i])
	s.persist(s.rec)
}

// DeleteBookmark removes the bookmark. It does not touch the trash.
func (s *BookmarkStore) DeleteBookmark(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Bookmarks, id, bookmarkID)
	if i < 0 {
		return
	}
	s.rec.Bookmarks = append(s.rec.Bookmarks[:i:i], s.rec.Bookmarks[i+1:]...)
	s.persist(s.rec)
}

// ReorderBookmarks replaces the bookmark list with list as given.
func (s *BookmarkStore) ReorderBookmarks(list []model.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Bookmarks = model.CloneBookmarks(list)
	s.persist(s.rec)
}

// IncrementVisitCount bumps the visit counter and stamps the visit time.
func (s *BookmarkStore) IncrementVisitCount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Bookmarks, id, bookmarkID)
	if i < 0 {
		return
	}
	now := s.now()
	s.rec.Bookmarks[i].VisitCount++
	s.rec.Bookmarks[i].LastVisitedAt = &now
	s.persist(s.rec)
}

// AddCategory appends c. The reserved "all" category is never stored.
func (s *BookmarkStore) AddCategory(c model.Category) {
	if c.IsAll() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Categories = append(s.rec.Categories, c)
	s.persist(s.rec)
}

// UpdateCategory merges patch into the category with the given id.
func (s *BookmarkStore) UpdateCategory(id string, patch model.CategoryPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Categories, id, categoryID)
	if i < 0 {
		return
	}
	patch.Apply(&s.rec.Categories[i])
	s.persist(s.rec)
}

// DeleteCategory removes the category and every bookmark in it.
func (s *BookmarkStore) DeleteCategory(id string) {
	if id == model.AllCategoryID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.rec.Categories, id, categoryID)
	if i < 0 {
		return
	}

	s.rec.Categories = append(s.rec.Categories[:i:i], s.rec.Categories[i+1:]...)

	kept := make([]model.Bookmark, 0, len(s.rec.Bookmarks))
	for _, b := range s.rec.Bookmarks {
		if b.CategoryID != id {
			kept = append(kept, b)
		}
	}
	s.rec.Bookmarks = kept
	s.persist(s.rec)
}

// ReorderCategories replaces the category list with list as given.
func (s *BookmarkStore) ReorderCategories(list []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Categories = model.CloneCategories(list)
	s.persist(s.rec)
}

// SetActiveCategory sets the bookmark filter. "all" means unfiltered.
func (s *BookmarkStore) SetActiveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec.ActiveCategory == id {
		return
	}
	s.rec.ActiveCategory = id
	s.persist(s.rec)
}

// InitializeWithMockData seeds sample data on a fresh install and
// applies sample updates newer than the recorded seed version. Running
// it again without a version bump changes nothing.
func (s *BookmarkStore) InitializeWithMockData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := !s.rec.IsInitialized && len(s.rec.Bookmarks) == 0
	steps := pendingSeeds(bookmarkSeeds, s.rec.MockDataVersion, fresh)
	if len(steps) == 0 {
		return
	}

	now := s.now()
	for _, step := range steps {
		step.apply(&s.rec, now)
	}
	s.rec.IsInitialized = true
	s.rec.MockDataVersion = latestSeed(bookmarkSeeds)

	s.log.Info("seeded sample bookmarks",
		logger.Int("steps", len(steps)),
		logger.Int("version", s.rec.MockDataVersion),
	)
	s.persist(s.rec)
}

// Snapshot returns a copy of the bookmarks and categories.
func (s *BookmarkStore) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.Snapshot{
		Bookmarks:  model.CloneBookmarks(s.rec.Bookmarks),
		Categories: model.CloneCategories(s.rec.Categories),
	}
}

// ReplaceAll swaps in snap wholesale. Import and sync go through here.
// An active filter that no longer matches a category falls back to "all".
func (s *BookmarkStore) ReplaceAll(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Bookmarks = model.CloneBookmarks(snap.Bookmarks)
	s.rec.Categories = model.CloneCategories(snap.Categories)
	s.rec.IsInitialized = true
	if s.rec.ActiveCategory != model.AllCategoryID &&
		indexOf(s.rec.Categories, s.rec.ActiveCategory, categoryID) < 0 {
		s.rec.ActiveCategory = model.AllCategoryID
	}
	s.persist(s.rec)
}

// Bookmarks returns a copy of all bookmarks in stored order.
func (s *BookmarkStore) Bookmarks() []model.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneBookmarks(s.rec.Bookmarks)
}

// Categories returns a copy of all categories in stored order.
func (s *BookmarkStore) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneCategories(s.rec.Categories)
}

// ActiveCategory returns the current filter.
func (s *BookmarkStore) ActiveCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.ActiveCategory
}

// IsInitialized reports whether sample data or real data has been loaded.
func (s *BookmarkStore) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.IsInitialized
}

// VisibleBookmarks returns the bookmarks matching the active filter.
// Bookmarks pointing at a missing category never match a real filter.
func (s *BookmarkStore) VisibleBookmarks() []model.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rec.ActiveCategory == model.AllCategoryID {
		return model.CloneBookmarks(s.rec.Bookmarks)
	}
	return filterBookmarks(s.rec.Bookmarks, s.rec.ActiveCategory)
}

// BookmarksInCategory returns the bookmarks whose categoryId is id.
func (s *BookmarkStore) BookmarksInCategory(id string) []model.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBookmarks(s.rec.Bookmarks, id)
}

func filterBookmarks(bookmarks []model.Bookmark, categoryID string) []model.Bookmark {
	result := []model.Bookmark{}
	for _, b := range bookmarks {
		if b.CategoryID == categoryID {
			result = append(result, b.Clone())
		}
	}
	return result
}

// ManageableCategories returns the categories shown as tabs,
// in stored order and without "all".
func (s *BookmarkStore) ManageableCategories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Category{}
	for _, c := range s.rec.Categories {
		if !c.IsAll() {
			result = append(result, c)
		}
	}
	return result
}

// BookmarkByID finds a bookmark by ID.
func (s *BookmarkStore) BookmarkByID(id string) (model.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.rec.Bookmarks, id, bookmarkID)
	if i < 0 {
		return model.Bookmark{}, false
	}
	return s.rec.Bookmarks[i].Clone(), true
}

// CategoryByID finds a category by ID.
func (s *BookmarkStore) CategoryByID(id string) (model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.rec.Categories, id, categoryID)
	if i < 0 {
		return model.Category{}, false
	}
	return s.rec.Categories[i], true
}

// RecentlyVisited returns visited bookmarks, most recent first.
// limit <= 0 returns all of them.
func (s *BookmarkStore) RecentlyVisited(limit int) []model.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var visited []model.Bookmark
	for _, b := range s.rec.Bookmarks {
		if b.LastVisitedAt != nil {
			visited = append(visited, b.Clone())
		}
	}
	sort.SliceStable(visited, func(i, j int) bool {
		return *visited[i].LastVisitedAt > *visited[j].LastVisitedAt
	})

	if limit > 0 && len(visited) > limit {
		visited = visited[:limit]
	}
	return visited
}
