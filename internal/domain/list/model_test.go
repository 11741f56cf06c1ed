package list_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/planora/planora/internal/domain/list"
	"github.com/planora/planora/internal/domain/plan"
	"github.com/planora/planora/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestContentStore(t *testing.T) *plan.ContentStore {
	t.Helper()
	repo := plan.NewRepository(storage.NewMemory(), nil)
	_, err := repo.Create(context.Background(), "Test Plan", "")
	require.NoError(t, err)
	return plan.NewContentStore(repo)
}

func entryIDs(items []list.Entry) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestCheckList_Add(t *testing.T) {
	ctx := context.Background()
	l := list.NewCheckList(newTestContentStore(t), "checklist", nil, nil)

	require.NoError(t, l.Add(ctx, "  buy   balloons\nand ribbon  "))
	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotEmpty(t, items[0].ID)
	require.Equal(t, "buy balloons and ribbon", items[0].Text)
	require.False(t, items[0].Checked)

	// Blank input is a silent no-op.
	require.NoError(t, l.Add(ctx, "   \n\t  "))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCheckList_EmptyTextDeletes(t *testing.T) {
	ctx := context.Background()
	l := list.NewCheckList(newTestContentStore(t), "checklist", nil, nil)

	require.NoError(t, l.Add(ctx, "send invites"))
	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, l.SetText(ctx, items[0].ID, "   "))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCheckList_ToggleAndRemoveIdempotence(t *testing.T) {
	ctx := context.Background()
	l := list.NewCheckList(newTestContentStore(t), "checklist", nil, nil)

	require.NoError(t, l.Add(ctx, "order cake"))
	items, err := l.Items(ctx)
	require.NoError(t, err)
	id := items[0].ID

	require.NoError(t, l.Toggle(ctx, id))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.True(t, items[0].Checked)

	// Missing ids leave the list untouched.
	require.NoError(t, l.Toggle(ctx, "missing"))
	require.NoError(t, l.Remove(ctx, "missing"))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].Checked)

	require.NoError(t, l.Remove(ctx, id))
	require.NoError(t, l.Remove(ctx, id))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCheckList_MalformedContentReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestContentStore(t)
	require.NoError(t, store.Set(ctx, "checklist", json.RawMessage(`"not a list"`)))

	l := list.NewCheckList(store, "checklist", nil, nil)
	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestModel_Move(t *testing.T) {
	ctx := context.Background()
	l := list.NewCheckList(newTestContentStore(t), "checklist", nil, nil)

	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, l.Add(ctx, text))
	}
	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	a, b, c := items[0].ID, items[1].ID, items[2].ID

	// Moving to the current slot or the one just after it is a no-op.
	require.NoError(t, l.Move(ctx, a, 0))
	require.NoError(t, l.Move(ctx, a, 1))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{a, b, c}, entryIDs(items))

	// Target indices are given in pre-removal coordinates.
	require.NoError(t, l.Move(ctx, a, 2))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{b, a, c}, entryIDs(items))

	// Out-of-range targets clamp to the ends.
	require.NoError(t, l.Move(ctx, b, 99))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{a, c, b}, entryIDs(items))

	require.NoError(t, l.Move(ctx, b, -5))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{b, a, c}, entryIDs(items))

	// Missing id is a no-op.
	require.NoError(t, l.Move(ctx, "missing", 0))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{b, a, c}, entryIDs(items))
}

func TestModel_ChangeNotifications(t *testing.T) {
	ctx := context.Background()

	var calls int
	var lastComponent string
	var lastLen int
	l := list.NewCheckList(newTestContentStore(t), "supplies", func(component string, items []list.Entry) {
		calls++
		lastComponent = component
		lastLen = len(items)
	}, nil)

	require.NoError(t, l.Add(ctx, "napkins"))
	require.Equal(t, 1, calls)
	require.Equal(t, "supplies", lastComponent)
	require.Equal(t, 1, lastLen)

	// Validation no-ops don't notify.
	require.NoError(t, l.Add(ctx, "  "))
	require.NoError(t, l.Toggle(ctx, "missing"))
	require.NoError(t, l.Remove(ctx, "missing"))
	require.Equal(t, 1, calls)

	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.NoError(t, l.Remove(ctx, items[0].ID))
	require.Equal(t, 2, calls)
	require.Equal(t, 0, lastLen)
}

func TestTeamList_TwoFieldBlankness(t *testing.T) {
	ctx := context.Background()
	l := list.NewTeamList(newTestContentStore(t), "team", nil, nil)

	// Both fields blank: no-op.
	require.NoError(t, l.Add(ctx, "  ", "\n"))
	members, err := l.Items(ctx)
	require.NoError(t, err)
	require.Empty(t, members)

	// One field is enough to keep the member.
	require.NoError(t, l.Add(ctx, "DJ", ""))
	require.NoError(t, l.Add(ctx, "Caterer", "Sam  Park"))
	members, err = l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "Sam Park", members[1].Name)

	// Clearing both fields removes the member.
	require.NoError(t, l.SetFields(ctx, members[0].ID, "", "   "))
	members, err = l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "Caterer", members[0].Role)
}

func TestModel_SingleItemMoveIsSafe(t *testing.T) {
	ctx := context.Background()
	l := list.NewCheckList(newTestContentStore(t), "checklist", nil, nil)

	require.NoError(t, l.Add(ctx, "only"))
	items, err := l.Items(ctx)
	require.NoError(t, err)

	require.NoError(t, l.Move(ctx, items[0].ID, 0))
	require.NoError(t, l.Move(ctx, items[0].ID, 1))
	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
