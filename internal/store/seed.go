package store

import (
	"github.com/nikbrunner/tabzero/internal/model"
)

// seedStep is one versioned change to the sample data.
type seedStep[T any] struct {
	version int
	apply   func(rec *T, now model.Timestamp)
}

// pendingSeeds returns the steps to run for a record at version current.
// A fresh record runs every step.
func pendingSeeds[T any](steps []seedStep[T], current int, fresh bool) []seedStep[T] {
	if fresh {
		return steps
	}
	var pending []seedStep[T]
	for _, s := range steps {
		if s.version > current {
			pending = append(pending, s)
		}
	}
	return pending
}

// latestSeed is the highest version in steps.
func latestSeed[T any](steps []seedStep[T]) int {
	latest := 0
	for _, s := range steps {
		if s.version > latest {
			latest = s.version
		}
	}
	return latest
}

// SampleCategoryID is the category the sample bookmarks live in.
const SampleCategoryID = "dev"

var bookmarkSeeds = []seedStep[bookmarksRecord]{
	{
		version: 1,
		apply: func(rec *bookmarksRecord, now model.Timestamp) {
			if len(rec.Categories) == 0 {
				rec.Categories = sampleCategories()
			}
			rec.Bookmarks = append(rec.Bookmarks, sampleBookmarks(now)...)
		},
	},
	{
		// Replaces the first sample set for existing installs.
		version: 2,
		apply: func(rec *bookmarksRecord, now model.Timestamp) {
			if indexOf(rec.Categories, SampleCategoryID, categoryID) < 0 {
				rec.Categories = append(rec.Categories, sampleCategories()...)
			}
			rec.Bookmarks = sampleBookmarks(now)
		},
	},
}

var quickLinkSeeds = []seedStep[quickLinksRecord]{
	{version: 1, apply: func(rec *quickLinksRecord, _ model.Timestamp) {}},
	{
		version: 2,
		apply: func(rec *quickLinksRecord, _ model.Timestamp) {
			rec.QuickLinks = sampleQuickLinks()
		},
	},
}

func sampleCategories() []model.Category {
	return []model.Category{
		{ID: SampleCategoryID, Name: "Frequent", Order: 1},
	}
}

func sampleBookmarks(now model.Timestamp) []model.Bookmark {
	seeds := []struct {
		title, url, color string
		visits            int
	}{
		{"Chrome Web Store", "https://chromewebstore.google.com/", "#333333", 15},
		{"Gmail", "https://mail.google.com/mail/u/0/#inbox", "#f48024", 12},
		{"YouTube", "https://www.youtube.com/", "#000000", 8},
	}

	out := make([]model.Bookmark, 0, len(seeds))
	for _, s := range seeds {
		b := model.NewBookmark(model.NewBookmarkParams{
			Title:      s.title,
			URL:        s.url,
			Color:      s.color,
			CategoryID: SampleCategoryID,
		})
		b.CreatedAt = now
		b.VisitCount = s.visits
		out = append(out, b)
	}
	return out
}

// The shipped quick link set is empty.
func sampleQuickLinks() []model.QuickLink {
	return []model.QuickLink{}
}
