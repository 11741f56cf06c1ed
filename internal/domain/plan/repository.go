// Package plan owns plan documents, the plan index, and the active-plan
// pointer, all persisted through the storage layer. The store is the single
// source of truth: every read goes back to storage, nothing is cached.
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/internal/storage"
)

// Storage keys.
const (
	keyIndex  = "planList"
	keyActive = "activePlan"
)

func keyPlan(id string) string { return "plan:" + id }

// Repository provides persistence for plan documents.
type Repository struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRepository creates a plan repository over the given store.
func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{store: store, logger: logger}
}

// Get fetches a plan document by ID. A missing or unreadable document is
// ErrPlanNotFound; documents never alias the stored state (the JSON
// boundary copies on every read and write).
func (r *Repository) Get(ctx context.Context, id string) (*Plan, error) {
	raw, err := r.store.Get(ctx, keyPlan(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("getting plan: %w", err)
	}
	var p Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.logger.Warn("discarding unreadable plan document", "id", id, "error", err)
		return nil, ErrPlanNotFound
	}
	return &p, nil
}

// Put stores a plan document, overwriting any previous version.
func (r *Repository) Put(ctx context.Context, p *Plan) error {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return ErrInvalidInput
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := r.store.Set(ctx, keyPlan(p.ID), string(raw)); err != nil {
		return fmt.Errorf("storing plan: %w", err)
	}
	return nil
}

// Create builds a new plan document, indexes it, and makes it active.
func (r *Repository) Create(ctx context.Context, title, description string, components ...Component) (*Plan, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	p := &Plan{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Components:  components,
	}

	if err := r.Put(ctx, p); err != nil {
		return nil, err
	}
	if err := r.indexUpsert(ctx, IndexEntry{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}); err != nil {
		return nil, err
	}
	if err := r.SetActive(ctx, ActivePlan{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}); err != nil {
		return nil, err
	}

	r.logger.Info("plan created", "id", p.ID, "title", p.Title)
	return p, nil
}

// Delete removes a plan document, purges its index row, and clears the
// active pointer if it referenced this plan. Idempotent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, keyPlan(id)); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if err := r.indexRemove(ctx, id); err != nil {
		return err
	}
	active, err := r.Active(ctx)
	if err != nil {
		return err
	}
	if active.ID == id {
		if err := r.ClearActive(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Rename updates a plan's title and description, bumping UpdatedAt and
// mirroring the change into the index and the active pointer.
func (r *Repository) Rename(ctx context.Context, id, title, description string) (*Plan, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	if err := r.Put(ctx, p); err != nil {
		return nil, err
	}
	if err := r.indexUpsert(ctx, IndexEntry{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}); err != nil {
		return nil, err
	}
	if err := r.mirrorActive(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Touch bumps a plan's UpdatedAt, mirroring into the index and active pointer.
func (r *Repository) Touch(ctx context.Context, id string) error {
	p, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := r.Put(ctx, p); err != nil {
		return err
	}
	if err := r.indexUpsert(ctx, IndexEntry{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}); err != nil {
		return err
	}
	return r.mirrorActive(ctx, p)
}

// List returns the plan index. Malformed or missing index data yields an
// empty listing, never an error surfaced to the caller.
func (r *Repository) List(ctx context.Context) ([]IndexEntry, error) {
	raw, err := r.store.Get(ctx, keyIndex)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plan index: %w", err)
	}
	var index planIndex
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		r.logger.Warn("discarding unreadable plan index", "error", err)
		return nil, nil
	}
	return index.Plans, nil
}

// Active returns the active-plan pointer. A never-set or unreadable pointer
// is the zero value: the repository never fabricates an active plan.
func (r *Repository) Active(ctx context.Context) (ActivePlan, error) {
	raw, err := r.store.Get(ctx, keyActive)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ActivePlan{}, nil
		}
		return ActivePlan{}, fmt.Errorf("reading active plan: %w", err)
	}
	var active ActivePlan
	if err := json.Unmarshal([]byte(raw), &active); err != nil {
		r.logger.Warn("discarding unreadable active pointer", "error", err)
		return ActivePlan{}, nil
	}
	return active, nil
}

// SetActive records which plan is being edited.
func (r *Repository) SetActive(ctx context.Context, active ActivePlan) error {
	raw, err := json.Marshal(active)
	if err != nil {
		return fmt.Errorf("encoding active plan: %w", err)
	}
	if err := r.store.Set(ctx, keyActive, string(raw)); err != nil {
		return fmt.Errorf("storing active plan: %w", err)
	}
	return nil
}

// ClearActive drops the active-plan pointer.
func (r *Repository) ClearActive(ctx context.Context) error {
	if err := r.store.Delete(ctx, keyActive); err != nil {
		return fmt.Errorf("clearing active plan: %w", err)
	}
	return nil
}

type planIndex struct {
	Plans []IndexEntry `json:"plans"`
}

func (r *Repository) writeIndex(ctx context.Context, index planIndex) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encoding plan index: %w", err)
	}
	if err := r.store.Set(ctx, keyIndex, string(raw)); err != nil {
		return fmt.Errorf("storing plan index: %w", err)
	}
	return nil
}

func (r *Repository) indexUpsert(ctx context.Context, entry IndexEntry) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	return r.writeIndex(ctx, planIndex{Plans: entries})
}

func (r *Repository) indexRemove(ctx context.Context, id string) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return r.writeIndex(ctx, planIndex{Plans: kept})
}

func (r *Repository) mirrorActive(ctx context.Context, p *Plan) error {
	active, err := r.Active(ctx)
	if err != nil {
		return err
	}
	if active.ID != p.ID {
		return nil
	}
	return r.SetActive(ctx, ActivePlan{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
}
