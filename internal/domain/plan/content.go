package plan

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"unicode"
)

// ContentStore reads and writes the content payload of one named component
// within whichever plan the active pointer currently names. It resolves the
// active plan fresh on every call so concurrent views never see stale state.
type ContentStore struct {
	repo *Repository
}

// NewContentStore creates a content store over the given repository.
func NewContentStore(repo *Repository) *ContentStore {
	return &ContentStore{repo: repo}
}

// Get returns the named component's content from the active plan. With no
// active plan, no such plan document, or no such component it returns
// (nil, nil) without creating anything.
func (s *ContentStore) Get(ctx context.Context, component string) (json.RawMessage, error) {
	active, err := s.repo.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active.ID == "" {
		return nil, nil
	}
	p, err := s.repo.Get(ctx, active.ID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return nil, nil
		}
		return nil, err
	}
	entry := p.Component(component)
	if entry == nil || entry.Content == nil {
		return nil, nil
	}
	out := make(json.RawMessage, len(entry.Content))
	copy(out, entry.Content)
	return out, nil
}

// Set writes the named component's content into the active plan, bumping its
// UpdatedAt. A plan lacking the component entry gets one auto-created with a
// derived title and the next position. With no active plan there is nothing
// to write into, so Set fails with ErrNoActivePlan.
func (s *ContentStore) Set(ctx context.Context, component string, content json.RawMessage) error {
	active, err := s.repo.Active(ctx)
	if err != nil {
		return err
	}
	if active.ID == "" {
		return ErrNoActivePlan
	}
	p, err := s.repo.Get(ctx, active.ID)
	if err != nil {
		return err
	}

	stored := make(json.RawMessage, len(content))
	copy(stored, content)

	entry := p.Component(component)
	if entry == nil {
		p.Components = append(p.Components, Component{
			Name:     component,
			Title:    displayTitle(component),
			Position: nextPosition(p.Components),
			State:    StateMounted,
		})
		entry = &p.Components[len(p.Components)-1]
	}
	entry.Content = stored
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Put(ctx, p); err != nil {
		return err
	}
	if err := s.repo.indexUpsert(ctx, IndexEntry{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}); err != nil {
		return err
	}
	return s.repo.mirrorActive(ctx, p)
}

func nextPosition(components []Component) int {
	max := 0
	for _, c := range components {
		if c.Position > max {
			max = c.Position
		}
	}
	return max + 1
}

func displayTitle(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
