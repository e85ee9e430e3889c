package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/tabzero/internal/model"
)

// MaxResults caps the number of results returned by Items.
const MaxResults = 10

// Kind tells bookmarks and quick links apart in results.
type Kind string

const (
	KindBookmark  Kind = "bookmark"
	KindQuickLink Kind = "quicklink"
)

// Item is something the global search can open.
type Item struct {
	Kind  Kind
	ID    string
	Title string
	URL   string
	Color string
}

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Item Item
	// MatchedIndexes are byte offsets into Item.Title.
	MatchedIndexes []int
	Score          int
}

// Collect lists bookmarks followed by quick links.
func Collect(bookmarks []model.Bookmark, links []model.QuickLink) []Item {
	items := make([]Item, 0, len(bookmarks)+len(links))
	for _, b := range bookmarks {
		items = append(items, Item{Kind: KindBookmark, ID: b.ID, Title: b.Title, URL: b.URL, Color: b.Color})
	}
	for _, l := range links {
		items = append(items, Item{Kind: KindQuickLink, ID: l.ID, Title: l.Title, URL: l.URL, Color: l.Color})
	}
	return items
}

// searchable implements fuzzy.Source over title and URL together.
type searchable []Item

func (s searchable) String(i int) string {
	return s[i].Title + " " + s[i].URL
}

func (s searchable) Len() int {
	return len(s)
}

// Items fuzzy-matches query against item titles and URLs.
// Returns results sorted by match score (best first), at most MaxResults.
// An empty query returns the first MaxResults items unranked.
func Items(items []Item, query string) []SearchResult {
	if query == "" {
		n := min(len(items), MaxResults)
		results := make([]SearchResult, n)
		for i := range n {
			results[i] = SearchResult{Item: items[i]}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, searchable(items))
	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		item := items[m.Index]
		results[i] = SearchResult{
			Item:           item,
			MatchedIndexes: titleIndexes(item.Title, m.MatchedIndexes),
			Score:          m.Score,
		}
	}
	return results
}

// titleIndexes keeps only the match positions that fall inside the title.
func titleIndexes(title string, indexes []int) []int {
	n := len(title)
	var out []int
	for _, i := range indexes {
		if i < n {
			out = append(out, i)
		}
	}
	return out
}

// EngineURL builds the search URL for query on the engine with id,
// resolved against the built-in and custom engines. It falls back to the
// first built-in engine when id is unknown.
func EngineURL(id string, custom []model.SearchEngine, query string) string {
	engines := model.EnabledEngines([]string{id}, custom)
	engine := model.AllSearchEngines[0]
	if len(engines) > 0 {
		engine = engines[0]
	}
	return model.SearchURL(engine, query)
}
