package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestStore creates a new in-memory SQLite store for testing.
func NewTestStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := NewSQLite(":memory:")
	require.NoError(t, err, "failed to create test store")

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	stores := map[string]Store{
		"sqlite": NewTestStore(t),
		"memory": NewMemory(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "a", "1"))
			require.NoError(t, store.Set(ctx, "b", "2"))

			value, err := store.Get(ctx, "a")
			require.NoError(t, err)
			require.Equal(t, "1", value)

			// Overwrite
			require.NoError(t, store.Set(ctx, "a", "3"))
			value, err = store.Get(ctx, "a")
			require.NoError(t, err)
			require.Equal(t, "3", value)

			// Delete is idempotent
			require.NoError(t, store.Delete(ctx, "a"))
			require.NoError(t, store.Delete(ctx, "a"))
			_, err = store.Get(ctx, "a")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Clear(ctx))
			_, err = store.Get(ctx, "b")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/planora.db"

	store, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", value)
}
