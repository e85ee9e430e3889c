package model

// QuickLink is a category-less shortcut shown in the compact strip.
type QuickLink struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Icon          string `json:"icon,omitempty"`
	CustomIconURL string `json:"customIconUrl,omitempty"`
	Color         string `json:"color"`
	Order         int    `json:"order"`
}

// NewQuickLinkParams holds parameters for creating a new QuickLink.
type NewQuickLinkParams struct {
	Title string
	URL   string
	Color string // empty = random palette color
	Order int
}

// NewQuickLink creates a QuickLink with a generated UUID.
func NewQuickLink(params NewQuickLinkParams) QuickLink {
	color := params.Color
	if color == "" {
		color = RandomColor()
	}
	return QuickLink{
		ID:    GenerateUUID(),
		Title: params.Title,
		URL:   params.URL,
		Color: color,
		Order: params.Order,
	}
}

// QuickLinkPatch is a partial update for a QuickLink.
type QuickLinkPatch struct {
	Title         *string
	URL           *string
	Icon          *string
	CustomIconURL *string
	Color         *string
	Order         *int
}

// Apply merges the patch into l.
func (p QuickLinkPatch) Apply(l *QuickLink) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	if p.Icon != nil {
		l.Icon = *p.Icon
	}
	if p.CustomIconURL != nil {
		l.CustomIconURL = *p.CustomIconURL
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Order != nil {
		l.Order = *p.Order
	}
}
