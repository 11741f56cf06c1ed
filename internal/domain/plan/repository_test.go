package plan_test

import (
	"context"
	"testing"

	"github.com/planora/planora/internal/domain/plan"
	"github.com/planora/planora/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*plan.Repository, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	return plan.NewRepository(store, nil), store
}

func TestRepository_CreateIndexesAndActivates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	p, err := repo.Create(ctx, "Birthday Party", "a small one")
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.False(t, p.CreatedAt.IsZero())

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, p.ID, entries[0].ID)
	require.Equal(t, "Birthday Party", entries[0].Title)

	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Equal(t, p.ID, active.ID)
}

func TestRepository_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.Create(ctx, "   ", "")
	require.ErrorIs(t, err, plan.ErrInvalidInput)
}

func TestRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, plan.ErrPlanNotFound)
}

func TestRepository_MalformedDataIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	require.NoError(t, store.Set(ctx, "plan:p1", "{not json"))
	_, err := repo.Get(ctx, "p1")
	require.ErrorIs(t, err, plan.ErrPlanNotFound)

	require.NoError(t, store.Set(ctx, "planList", "garbage"))
	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	require.NoError(t, store.Set(ctx, "activePlan", "[oops"))
	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Empty(t, active.ID)
}

func TestRepository_ActiveNeverFabricates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Empty(t, active.ID)

	// Still nothing after unrelated reads.
	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
	active, err = repo.Active(ctx)
	require.NoError(t, err)
	require.Empty(t, active.ID)
}

func TestRepository_DeletePurgesIndexAndActive(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	first, err := repo.Create(ctx, "First", "")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Second", "")
	require.NoError(t, err)

	// Second is now active; deleting first must not touch the pointer.
	require.NoError(t, repo.Delete(ctx, first.ID))
	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)

	require.NoError(t, repo.Delete(ctx, second.ID))
	active, err = repo.Active(ctx)
	require.NoError(t, err)
	require.Empty(t, active.ID)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	// Idempotent.
	require.NoError(t, repo.Delete(ctx, second.ID))
}

func TestRepository_RenameMirrors(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	p, err := repo.Create(ctx, "Draft", "")
	require.NoError(t, err)

	renamed, err := repo.Rename(ctx, p.ID, "Garden Party", "outdoors")
	require.NoError(t, err)
	require.Equal(t, "Garden Party", renamed.Title)
	require.True(t, renamed.UpdatedAt.After(p.UpdatedAt) || renamed.UpdatedAt.Equal(p.UpdatedAt))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Garden Party", entries[0].Title)

	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Equal(t, "Garden Party", active.Title)
}

func TestRepository_PutCopiesOnTheWayOut(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	p, err := repo.Create(ctx, "Aliasing", "", plan.Component{Name: "checklist", Title: "Checklist", Position: 1, State: plan.StateMounted})
	require.NoError(t, err)

	// Mutating a fetched document must not leak into storage.
	fetched, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	fetched.Components[0].Title = "Tampered"

	fresh, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Checklist", fresh.Components[0].Title)
}
