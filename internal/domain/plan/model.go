package plan

import (
	"encoding/json"
	"time"
)

// Component states.
const (
	StateMounted   = "mounted"
	StateUnmounted = "unmounted"
)

// Plan is a full plan document: a titled container of named component lists.
type Plan struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Components  []Component `json:"components"`
}

// Component is one named sub-list within a plan. Name is unique per plan;
// Position is 1-based and defines render order. Content is the list-specific
// payload, kept opaque at this layer.
type Component struct {
	Name     string          `json:"name"`
	Title    string          `json:"title"`
	Position int             `json:"position"`
	State    string          `json:"state"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// Component returns the named component entry, or nil.
func (p *Plan) Component(name string) *Component {
	for i := range p.Components {
		if p.Components[i].Name == name {
			return &p.Components[i]
		}
	}
	return nil
}

// IndexEntry is a lightweight representation for listing, stored separately
// from the full documents so listings don't load every payload.
type IndexEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivePlan identifies which plan is currently being edited. A zero ID
// means no plan is active.
type ActivePlan struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
