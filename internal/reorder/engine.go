// Package reorder translates pointer drag gestures over a vertical list into
// a single (itemID, targetIndex) reorder callback. It is pure geometry: the
// caller feeds it pointer positions and row boxes, it owes nothing to any
// particular rendering layer and nothing about what the rows mean.
package reorder

import "errors"

// ErrNoCallback is returned when a List is constructed without the required
// reorder callback. This is a configuration mistake and fails at setup time,
// never silently at gesture time.
var ErrNoCallback = errors.New("reorder: OnReorder callback is required")

// DefaultEdgeZone is the height, in the caller's units, of the top and
// bottom bands that force a drop to the list's ends.
const DefaultEdgeZone = 12.0

// Box is one rendered row: its id plus vertical extent.
type Box struct {
	ID     string
	Top    float64
	Height float64
}

func (b Box) mid() float64 { return b.Top + b.Height/2 }

// Bounds is the list container's vertical extent.
type Bounds struct {
	Top    float64
	Height float64
}

func (b Bounds) bottom() float64 { return b.Top + b.Height }

// Target is a candidate insertion point: the guide sits before the item at
// Index, with Index == len meaning after the last item. Indices are in
// as-seen-before-removal coordinates, matching the list model's Move.
type Target struct {
	Index int
}

// Options configures a List.
type Options struct {
	// OnReorder receives the final (itemID, targetIndex) on drop. Required.
	OnReorder func(id string, index int) error
	// Match filters which boxes count as reorderable rows (placeholder and
	// "add new" rows are excluded by returning false). Nil matches all.
	Match func(Box) bool
	// EdgeZone overrides DefaultEdgeZone when positive.
	EdgeZone float64
	// CaptureOutside maps pointer positions above or below the container
	// to the list's start or end instead of dropping the gesture.
	CaptureOutside bool
}

// List binds the reorder gesture logic to one list, identified by id, and a
// shared drag session.
type List struct {
	id      string
	session *Session
	opts    Options

	guide    Target
	hasGuide bool
}

// NewList creates the reorder handler for one list.
func NewList(id string, session *Session, opts Options) (*List, error) {
	if opts.OnReorder == nil {
		return nil, ErrNoCallback
	}
	if opts.EdgeZone <= 0 {
		opts.EdgeZone = DefaultEdgeZone
	}
	return &List{id: id, session: session, opts: opts}, nil
}

// Start begins a drag of itemID within this list, claiming the shared
// session. Any stale drag state from an earlier gesture is discarded.
func (l *List) Start(itemID string) {
	l.session.claim(l.id, itemID)
	l.hasGuide = false
}

// Hover updates the candidate insertion point for the pointer's vertical
// position. It reports false, placing no guide, when this list doesn't own
// the drag in flight or the pointer yields no target.
func (l *List) Hover(y float64, boxes []Box, bounds Bounds) (Target, bool) {
	if !l.session.ownedBy(l.id) {
		return Target{}, false
	}
	target, ok := l.target(y, boxes, bounds)
	if !ok {
		l.hasGuide = false
		return Target{}, false
	}
	// A single guide per list: each hover replaces the previous one.
	l.guide = target
	l.hasGuide = true
	return target, true
}

// Guide returns the currently placed insertion guide, if any.
func (l *List) Guide() (Target, bool) {
	return l.guide, l.hasGuide
}

// Drop finishes the gesture at the pointer's final position. The callback
// fires only for a real move within the owning list; the session and guide
// are cleared unconditionally either way.
func (l *List) Drop(y float64, boxes []Box, bounds Bounds) error {
	owner := l.session.ownedBy(l.id)
	_, itemID := l.session.Dragging()
	defer l.Cancel()

	if !owner {
		return nil
	}
	target, ok := l.target(y, boxes, bounds)
	if !ok {
		return nil
	}
	eligible := l.eligible(boxes)
	cur := -1
	for i, box := range eligible {
		if box.ID == itemID {
			cur = i
			break
		}
	}
	if cur < 0 {
		return nil
	}
	// Dropping on the item's own slot, or the slot just after it, moves
	// nothing. A single-item list always lands here.
	if target.Index == cur || target.Index == cur+1 {
		return nil
	}
	return l.opts.OnReorder(itemID, target.Index)
}

// Cancel clears the guide and the shared drag state. Called on drag-end and
// leave-without-drop as well as internally after every drop.
func (l *List) Cancel() {
	l.hasGuide = false
	l.session.Reset()
}

func (l *List) eligible(boxes []Box) []Box {
	if l.opts.Match == nil {
		return boxes
	}
	out := boxes[:0:0]
	for _, box := range boxes {
		if l.opts.Match(box) {
			out = append(out, box)
		}
	}
	return out
}

func (l *List) target(y float64, boxes []Box, bounds Bounds) (Target, bool) {
	eligible := l.eligible(boxes)

	if y < bounds.Top || y > bounds.bottom() {
		if !l.opts.CaptureOutside {
			return Target{}, false
		}
		if y < bounds.Top {
			return Target{Index: 0}, true
		}
		return Target{Index: len(eligible)}, true
	}

	// Edge bands override the midline rule so packed lists still accept
	// drops at their extremes.
	if y <= bounds.Top+l.opts.EdgeZone {
		return Target{Index: 0}, true
	}
	if y >= bounds.bottom()-l.opts.EdgeZone {
		return Target{Index: len(eligible)}, true
	}

	for i, box := range eligible {
		if box.mid() > y {
			return Target{Index: i}, true
		}
	}
	return Target{Index: len(eligible)}, true
}
