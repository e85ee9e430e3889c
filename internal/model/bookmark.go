package model

// Bookmark represents a saved URL shown on the dashboard grid.
type Bookmark struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Icon          string     `json:"icon,omitempty"`
	Color         string     `json:"color"`
	CategoryID    string     `json:"categoryId"`
	CreatedAt     Timestamp  `json:"createdAt"`
	VisitCount    int        `json:"visitCount"`
	LastVisitedAt *Timestamp `json:"lastVisitedAt,omitempty"` // nil = never visited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title      string
	URL        string
	Icon       string
	Color      string // empty = random palette color
	CategoryID string
}

// NewBookmark creates a Bookmark with a generated UUID and creation time.
func NewBookmark(params NewBookmarkParams) Bookmark {
	color := params.Color
	if color == "" {
		color = RandomColor()
	}

	return Bookmark{
		ID:         GenerateUUID(),
		Title:      params.Title,
		URL:        EnsureProtocol(params.URL),
		Icon:       params.Icon,
		Color:      color,
		CategoryID: params.CategoryID,
		CreatedAt:  Now(),
	}
}

// BookmarkPatch is a partial update for a Bookmark.
// Nil fields are left untouched. The ID is immutable.
type BookmarkPatch struct {
	Title         *string
	URL           *string
	Icon          *string
	Color         *string
	CategoryID    *string
	VisitCount    *int
	LastVisitedAt *Timestamp
}

// Apply merges the patch into b.
func (p BookmarkPatch) Apply(b *Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Icon != nil {
		b.Icon = *p.Icon
	}
	if p.Color != nil {
		b.Color = *p.Color
	}
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	if p.VisitCount != nil && *p.VisitCount >= 0 {
		b.VisitCount = *p.VisitCount
	}
	if p.LastVisitedAt != nil {
		t := *p.LastVisitedAt
		b.LastVisitedAt = &t
	}
}

// Clone returns a deep copy of the bookmark.
func (b Bookmark) Clone() Bookmark {
	if b.LastVisitedAt != nil {
		t := *b.LastVisitedAt
		b.LastVisitedAt = &t
	}
	return b
}

// CloneBookmarks deep-copies a bookmark slice, never returning nil.
func CloneBookmarks(in []Bookmark) []Bookmark {
	out := make([]Bookmark, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
