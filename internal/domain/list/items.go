package list

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// CollapseLine trims s and collapses every run of whitespace, newlines
// included, to a single space. Single-line fields all pass through here.
func CollapseLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewID generates a fresh unique item id.
func NewID() string {
	return uuid.NewString()
}

// Entry is a checkable single-line item (tasks, guests, supplies).
type Entry struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

func (e Entry) ItemID() string { return e.ID }
func (e Entry) Blank() bool    { return e.Text == "" }

// Note is a plain single-line item (timeline steps).
type Note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (n Note) ItemID() string { return n.ID }
func (n Note) Blank() bool    { return n.Text == "" }

// Member is a two-field team item. It is blank only when both fields are.
type Member struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}

func (m Member) ItemID() string { return m.ID }
func (m Member) Blank() bool    { return m.Role == "" && m.Name == "" }

// CheckList is the checkable-entry variant of the generic model.
type CheckList struct {
	*Model[Entry]
}

// NewCheckList binds a checkable list to a component slot.
func NewCheckList(store Store, component string, onChange ChangeFunc[Entry], logger *slog.Logger) *CheckList {
	return &CheckList{Model: NewModel(store, component, onChange, logger)}
}

// Add appends a new unchecked entry. Blank text is a silent no-op.
func (l *CheckList) Add(ctx context.Context, text string) error {
	text = CollapseLine(text)
	if text == "" {
		return nil
	}
	return l.Append(ctx, Entry{ID: uuid.NewString(), Text: text})
}

// SetText replaces an entry's text; text that normalizes to blank removes
// the entry instead.
func (l *CheckList) SetText(ctx context.Context, id, text string) error {
	return l.Update(ctx, id, func(e Entry) Entry {
		e.Text = CollapseLine(text)
		return e
	})
}

// Toggle flips the checked flag. A missing id is a no-op.
func (l *CheckList) Toggle(ctx context.Context, id string) error {
	return l.Update(ctx, id, func(e Entry) Entry {
		e.Checked = !e.Checked
		return e
	})
}

// NoteList is the plain-text variant of the generic model.
type NoteList struct {
	*Model[Note]
}

// NewNoteList binds a plain-text list to a component slot.
func NewNoteList(store Store, component string, onChange ChangeFunc[Note], logger *slog.Logger) *NoteList {
	return &NoteList{Model: NewModel(store, component, onChange, logger)}
}

// Add appends a new note. Blank text is a silent no-op.
func (l *NoteList) Add(ctx context.Context, text string) error {
	text = CollapseLine(text)
	if text == "" {
		return nil
	}
	return l.Append(ctx, Note{ID: uuid.NewString(), Text: text})
}

// SetText replaces a note's text; text that normalizes to blank removes it.
func (l *NoteList) SetText(ctx context.Context, id, text string) error {
	return l.Update(ctx, id, func(n Note) Note {
		n.Text = CollapseLine(text)
		return n
	})
}

// TeamList is the role+name variant of the generic model.
type TeamList struct {
	*Model[Member]
}

// NewTeamList binds a team list to a component slot.
func NewTeamList(store Store, component string, onChange ChangeFunc[Member], logger *slog.Logger) *TeamList {
	return &TeamList{Model: NewModel(store, component, onChange, logger)}
}

// Add appends a new member. It is a silent no-op when both fields
// normalize to blank.
func (l *TeamList) Add(ctx context.Context, role, name string) error {
	member := Member{ID: uuid.NewString(), Role: CollapseLine(role), Name: CollapseLine(name)}
	return l.Append(ctx, member)
}

// SetFields replaces a member's fields; a member whose fields both
// normalize to blank is removed instead.
func (l *TeamList) SetFields(ctx context.Context, id, role, name string) error {
	return l.Update(ctx, id, func(m Member) Member {
		m.Role = CollapseLine(role)
		m.Name = CollapseLine(name)
		return m
	})
}
