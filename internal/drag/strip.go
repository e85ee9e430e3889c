package drag

import (
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
)

// QuickLinkStrip drives drags on the quick link strip: reordering its own
// links, and accepting bookmarks or outside links dropped onto it.
type QuickLinkStrip struct {
	store   *store.QuickLinkStore
	session Session
}

// NewQuickLinkStrip creates a strip over s.
func NewQuickLinkStrip(s *store.QuickLinkStore) *QuickLinkStrip {
	return &QuickLinkStrip{store: s}
}

// Session exposes the drag state for rendering.
func (q *QuickLinkStrip) Session() *Session { return &q.session }

// StartDrag begins dragging the link at index.
func (q *QuickLinkStrip) StartDrag(index int) bool {
	links := q.store.QuickLinks()
	if !inRange(index, len(links)) {
		return false
	}
	q.session.Start(index, links[index].ID)
	return true
}

// Over hovers the link at index.
func (q *QuickLinkStrip) Over(index int) bool {
	return q.session.Over(index)
}

// DropOnLink handles a drop on the link at index. An internal drag
// reorders. A drop from outside is treated like a drop on the strip.
func (q *QuickLinkStrip) DropOnLink(index int, data string) (Outcome, model.QuickLink) {
	if q.session.DraggingID() == "" {
		return q.DropOnContainer(data)
	}
	defer q.session.End()

	from, _ := q.session.DragIndex()
	links := q.store.QuickLinks()
	if from == index || !inRange(from, len(links)) || !inRange(index, len(links)) {
		return None, model.QuickLink{}
	}

	q.store.ReorderQuickLinks(Move(links, from, index))
	return Reordered, model.QuickLink{}
}

// DropOnContainer handles a drop on the strip itself. A bookmark or
// external link is added unless a link with the same URL exists.
func (q *QuickLinkStrip) DropOnContainer(data string) (Outcome, model.QuickLink) {
	internal := q.session.DraggingID() != ""
	q.session.End()
	if internal {
		return None, model.QuickLink{}
	}

	p, err := Decode(data)
	if err != nil {
		return None, model.QuickLink{}
	}
	title, url, ok := p.Link()
	if !ok {
		return None, model.QuickLink{}
	}

	if q.store.HasURL(url) {
		return Duplicate, model.QuickLink{}
	}

	if title == "" {
		title = model.Domain(url)
	}
	link := model.NewQuickLink(model.NewQuickLinkParams{
		Title: title,
		URL:   url,
		Order: len(q.store.QuickLinks()),
	})
	q.store.AddQuickLink(link)
	return Added, link
}

// End ends a drag without dropping.
func (q *QuickLinkStrip) End() {
	q.session.End()
}
