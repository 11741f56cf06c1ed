// Package list implements the ordered-collection contract shared by every
// plain item list in a plan (tasks, guests, supplies, team, timeline). One
// generic model carries the add/update/remove/move semantics; thin variant
// adapters supply field shapes and emptiness rules.
package list

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Item is an element of a list. Blank items are never stored: an update
// that normalizes to blank deletes the item instead.
type Item interface {
	ItemID() string
	Blank() bool
}

// Store is the component-content slot a model persists into. Satisfied by
// plan.ContentStore.
type Store interface {
	Get(ctx context.Context, component string) (json.RawMessage, error)
	Set(ctx context.Context, component string, content json.RawMessage) error
}

// ChangeFunc is notified after every persisted mutation with the component
// name and the fresh full list. Consumers should re-read Items rather than
// hold onto the payload.
type ChangeFunc[T Item] func(component string, items []T)

// Model maintains an ordered collection of items under one named component
// slot. It never caches: every operation reads the slot fresh.
type Model[T Item] struct {
	store     Store
	component string
	onChange  ChangeFunc[T]
	logger    *slog.Logger
}

// NewModel creates a list model over one component slot. onChange may be nil.
func NewModel[T Item](store Store, component string, onChange ChangeFunc[T], logger *slog.Logger) *Model[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Model[T]{store: store, component: component, onChange: onChange, logger: logger}
}

// Component returns the slot name this model is bound to.
func (m *Model[T]) Component() string { return m.component }

type payload[T Item] struct {
	Items []T `json:"items"`
}

// Items returns the current list. Absent or malformed stored content is an
// empty list, never an error.
func (m *Model[T]) Items(ctx context.Context) ([]T, error) {
	raw, err := m.store.Get(ctx, m.component)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var stored payload[T]
	if err := json.Unmarshal(raw, &stored); err != nil {
		m.logger.Warn("discarding unreadable list content", "component", m.component, "error", err)
		return nil, nil
	}
	return stored.Items, nil
}

// Append adds an item at the end. Blank items are silently dropped.
func (m *Model[T]) Append(ctx context.Context, item T) error {
	if item.Blank() {
		return nil
	}
	items, err := m.Items(ctx)
	if err != nil {
		return err
	}
	return m.save(ctx, append(items, item))
}

// Update applies fn to the matching item in place. If the result is blank
// the item is removed instead. A missing id is a no-op.
func (m *Model[T]) Update(ctx context.Context, id string, fn func(T) T) error {
	items, err := m.Items(ctx)
	if err != nil {
		return err
	}
	for i, item := range items {
		if item.ItemID() != id {
			continue
		}
		next := fn(item)
		if next.Blank() {
			return m.save(ctx, append(items[:i], items[i+1:]...))
		}
		items[i] = next
		return m.save(ctx, items)
	}
	return nil
}

// Remove filters the item out. A missing id is a no-op.
func (m *Model[T]) Remove(ctx context.Context, id string) error {
	items, err := m.Items(ctx)
	if err != nil {
		return err
	}
	for i, item := range items {
		if item.ItemID() == id {
			return m.save(ctx, append(items[:i], items[i+1:]...))
		}
	}
	return nil
}

// Move relocates one item to toIndex, given in as-seen-before-removal
// coordinates and clamped to [0, len]. Moving to the item's own position or
// the slot just after it changes nothing and is skipped entirely.
func (m *Model[T]) Move(ctx context.Context, id string, toIndex int) error {
	items, err := m.Items(ctx)
	if err != nil {
		return err
	}
	moved, changed := MoveToIndex(items, id, toIndex)
	if !changed {
		return nil
	}
	return m.save(ctx, moved)
}

// Replace persists a full new ordering. Used by engines layered on top of
// the model (the schedule reflow rewrites every item in one shot).
func (m *Model[T]) Replace(ctx context.Context, items []T) error {
	return m.save(ctx, items)
}

// MoveToIndex is the shared reorder primitive. The schedule engine reuses it
// so drag semantics stay identical across list kinds. It reports whether the
// order actually changed.
func MoveToIndex[T Item](items []T, id string, toIndex int) ([]T, bool) {
	cur := -1
	for i, item := range items {
		if item.ItemID() == id {
			cur = i
			break
		}
	}
	if cur < 0 {
		return items, false
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(items) {
		toIndex = len(items)
	}
	// Removing then reinserting at the same or the adjacent slot is a no-op.
	if toIndex == cur || toIndex == cur+1 {
		return items, false
	}

	item := items[cur]
	rest := append(append([]T{}, items[:cur]...), items[cur+1:]...)
	if toIndex > cur {
		toIndex--
	}
	out := append([]T{}, rest[:toIndex]...)
	out = append(out, item)
	out = append(out, rest[toIndex:]...)
	return out, true
}

func (m *Model[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(payload[T]{Items: items})
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.component, raw); err != nil {
		return err
	}
	if m.onChange != nil {
		m.onChange(m.component, items)
	}
	return nil
}
