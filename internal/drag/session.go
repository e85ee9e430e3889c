package drag

// Session is the drag state of one drag domain. The zero value is idle.
type Session struct {
	dragIndex  int
	dragging   bool
	overIndex  int
	over       bool
	draggingID string
}

// Start begins dragging the item at index with the given id.
func (s *Session) Start(index int, id string) {
	*s = Session{dragIndex: index, dragging: true, draggingID: id}
}

// Over records the hovered index. Hovering the dragged item itself never
// highlights; it reports whether index is now the highlighted one.
func (s *Session) Over(index int) bool {
	if s.dragging && index == s.dragIndex {
		return false
	}
	s.overIndex = index
	s.over = true
	return true
}

// Leave clears the hover highlight.
func (s *Session) Leave() {
	s.over = false
	s.overIndex = 0
}

// End clears all state without touching any collection.
func (s *Session) End() {
	*s = Session{}
}

// Dragging reports whether an internal drag is in progress.
func (s *Session) Dragging() bool {
	return s.dragging
}

// DragIndex returns the index being dragged.
func (s *Session) DragIndex() (int, bool) {
	return s.dragIndex, s.dragging
}

// OverIndex returns the highlighted index.
func (s *Session) OverIndex() (int, bool) {
	return s.overIndex, s.over
}

// DraggingID is the id of the dragged item, empty when idle. A drop that
// arrives while it is empty came from outside this domain.
func (s *Session) DraggingID() string {
	return s.draggingID
}

// Highlighted reports whether index should render as a drop target.
func (s *Session) Highlighted(index int) bool {
	return s.over && s.overIndex == index && !(s.dragging && s.dragIndex == index)
}

// IsDragged reports whether index is the item being dragged.
func (s *Session) IsDragged(index int) bool {
	return s.dragging && s.dragIndex == index
}
