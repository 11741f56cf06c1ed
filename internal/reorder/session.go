package reorder

// Session is the shared drag context for one UI surface: at most one drag
// gesture is in flight across all of its lists at any moment. It is plain
// state handed to each List rather than package-level state, so independent
// surfaces can run side by side without cross-talk.
type Session struct {
	listID string
	itemID string
}

// NewSession creates an idle drag session.
func NewSession() *Session {
	return &Session{}
}

// Active reports whether a drag is in flight.
func (s *Session) Active() bool {
	return s.listID != ""
}

// Dragging returns the list and item of the drag in flight.
func (s *Session) Dragging() (listID, itemID string) {
	return s.listID, s.itemID
}

// Reset clears the drag state. Safe to call at any time; every terminal
// drag event must end up here so no state leaks into the next gesture.
func (s *Session) Reset() {
	s.listID = ""
	s.itemID = ""
}

func (s *Session) claim(listID, itemID string) {
	s.listID = listID
	s.itemID = itemID
}

func (s *Session) ownedBy(listID string) bool {
	return s.listID == listID
}
