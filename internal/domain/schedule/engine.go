// Package schedule keeps a time-stamped activity list self-consistent: it
// sorts by clock time, maintains the trailing "End" sentinel, and recomputes
// start times after manual edits and drag reorders. All clock arithmetic is
// forward-wrapping across midnight.
package schedule

import (
	"context"
	"log/slog"
	"sort"

	"github.com/planora/planora/internal/domain/list"
)

const (
	// EndID is the reserved id of the sentinel closing the schedule. The
	// sentinel is never reordered or deleted, only edited.
	EndID = "end"
	// MinEndGap is the minimum forward distance, in minutes, from the last
	// activity to the sentinel.
	MinEndGap = 15
	// DefaultSlot is the duration granted to a newly added activity.
	DefaultSlot = 60
	// DefaultStart seeds the first activity when no time is given.
	DefaultStart = "08:00"
	// DefaultEndText is restored whenever the sentinel's label is cleared.
	DefaultEndText = "End"
)

// Activity is one schedule row. Time is a zero-padded "HH:MM" string.
type Activity struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"`
}

func (a Activity) ItemID() string { return a.ID }
func (a Activity) Blank() bool    { return a.Text == "" }

// Engine runs the schedule rules over one component slot. It reads the slot
// fresh on every operation and persists through the shared list model.
type Engine struct {
	model *list.Model[Activity]
	newID func() string
}

// NewEngine creates a schedule engine over a component slot. onChange may be
// nil. newID generates activity ids; nil selects uuid generation.
func NewEngine(store list.Store, component string, onChange list.ChangeFunc[Activity], logger *slog.Logger, newID func() string) *Engine {
	if newID == nil {
		newID = list.NewID
	}
	return &Engine{
		model: list.NewModel(store, component, onChange, logger),
		newID: newID,
	}
}

// Activities returns the current schedule, sentinel included.
func (e *Engine) Activities(ctx context.Context) ([]Activity, error) {
	return e.model.Items(ctx)
}

// split partitions stored items into ordinary activities and the sentinel.
func split(items []Activity) (ordinary []Activity, sentinel *Activity) {
	for _, item := range items {
		if item.ID == EndID {
			s := item
			sentinel = &s
			continue
		}
		ordinary = append(ordinary, item)
	}
	return ordinary, sentinel
}

func join(ordinary []Activity, sentinel *Activity) []Activity {
	if sentinel == nil {
		return ordinary
	}
	return append(ordinary, *sentinel)
}

// Add appends a new activity. The first add on an empty schedule creates the
// activity at the given time (default 08:00) plus the sentinel one slot
// later; later adds take the sentinel's current time and push the sentinel a
// slot further forward. Blank text is a silent no-op.
func (e *Engine) Add(ctx context.Context, text, timeOfDay string) error {
	text = list.CollapseLine(text)
	if text == "" {
		return nil
	}
	items, err := e.model.Items(ctx)
	if err != nil {
		return err
	}
	ordinary, sentinel := split(items)

	if len(ordinary) == 0 && sentinel == nil {
		start, err := ParseClock(timeOfDay)
		if err != nil {
			start, _ = ParseClock(DefaultStart)
		}
		first := Activity{ID: e.newID(), Text: text, Time: FormatClock(start)}
		end := Activity{ID: EndID, Text: DefaultEndText, Time: FormatClock(AddClock(start, DefaultSlot))}
		return e.model.Replace(ctx, []Activity{first, end})
	}

	if sentinel == nil {
		// Legacy content without a sentinel: synthesize one a slot after
		// the last activity before applying the normal rule.
		last, _ := ParseClock(ordinary[len(ordinary)-1].Time)
		sentinel = &Activity{ID: EndID, Text: DefaultEndText, Time: FormatClock(AddClock(last, DefaultSlot))}
	}

	at, err := ParseClock(sentinel.Time)
	if err != nil {
		at, _ = ParseClock(DefaultStart)
	}
	ordinary = append(ordinary, Activity{ID: e.newID(), Text: text, Time: FormatClock(at)})
	sentinel.Time = FormatClock(AddClock(at, DefaultSlot))
	return e.model.Replace(ctx, join(ordinary, sentinel))
}

// UpdateText renames an activity. Clearing an ordinary activity's text
// removes it; the sentinel can never be blank and falls back to "End".
func (e *Engine) UpdateText(ctx context.Context, id, text string) error {
	text = list.CollapseLine(text)
	if id == EndID && text == "" {
		text = DefaultEndText
	}
	return e.model.Update(ctx, id, func(a Activity) Activity {
		a.Text = text
		return a
	})
}

// UpdateTime applies a manual time edit: set the new time, stable-sort the
// ordinary activities by clock time (ties keep their prior relative order),
// then push the sentinel out to the minimum gap if the edit crowded it.
// Invalid time strings and missing ids are silently ignored.
func (e *Engine) UpdateTime(ctx context.Context, id, timeOfDay string) error {
	if _, err := ParseClock(timeOfDay); err != nil {
		return nil
	}
	items, err := e.model.Items(ctx)
	if err != nil {
		return err
	}
	ordinary, sentinel := split(items)

	found := false
	if id == EndID && sentinel != nil {
		sentinel.Time = timeOfDay
		found = true
	} else {
		for i := range ordinary {
			if ordinary[i].ID == id {
				ordinary[i].Time = timeOfDay
				found = true
				break
			}
		}
	}
	if !found {
		return nil
	}

	sortByTime(ordinary)
	enforceEndGap(ordinary, sentinel)
	return e.model.Replace(ctx, join(ordinary, sentinel))
}

// Move applies a drag reorder with time reflow: each activity keeps its
// pre-move duration (forward distance to its old successor, the sentinel
// closing the last slot), the walk restarts from the pre-move first
// activity's time, and the sentinel lands where the walk ends.
//
// Anchoring on the old first slot reproduces the historical behavior: when
// the first activity is dragged away, whichever activity becomes first
// inherits the vacated starting time. How drags that never touch the first
// slot should anchor is an open product question; this keeps the documented
// rule rather than guessing.
func (e *Engine) Move(ctx context.Context, id string, toIndex int) error {
	if id == EndID {
		return nil
	}
	items, err := e.model.Items(ctx)
	if err != nil {
		return err
	}
	ordinary, sentinel := split(items)
	if len(ordinary) < 2 {
		return nil
	}

	if sentinel == nil {
		// Nothing to reflow against: plain reorder.
		moved, changed := list.MoveToIndex(ordinary, id, toIndex)
		if !changed {
			return nil
		}
		return e.model.Replace(ctx, moved)
	}

	durations := make(map[string]int, len(ordinary))
	for i, act := range ordinary {
		start, _ := ParseClock(act.Time)
		nextTime := sentinel.Time
		if i+1 < len(ordinary) {
			nextTime = ordinary[i+1].Time
		}
		next, _ := ParseClock(nextTime)
		durations[act.ID] = ClockDiff(start, next)
	}
	anchor, _ := ParseClock(ordinary[0].Time)

	moved, changed := list.MoveToIndex(ordinary, id, toIndex)
	if !changed {
		return nil
	}

	cursor := anchor
	for i := range moved {
		moved[i].Time = FormatClock(cursor)
		cursor = AddClock(cursor, durations[moved[i].ID])
	}
	sentinel.Time = FormatClock(cursor)
	enforceEndGap(moved, sentinel)
	return e.model.Replace(ctx, join(moved, sentinel))
}

func sortByTime(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		a, _ := ParseClock(activities[i].Time)
		b, _ := ParseClock(activities[j].Time)
		return a < b
	})
}

// enforceEndGap pushes the sentinel out to MinEndGap past the last activity
// when they have been crowded together.
func enforceEndGap(ordinary []Activity, sentinel *Activity) {
	if sentinel == nil || len(ordinary) == 0 {
		return
	}
	last, _ := ParseClock(ordinary[len(ordinary)-1].Time)
	end, _ := ParseClock(sentinel.Time)
	if ClockDiff(last, end) < MinEndGap {
		sentinel.Time = FormatClock(AddClock(last, MinEndGap))
	}
}
