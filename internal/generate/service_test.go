package generate_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/planora/planora/internal/domain/plan"
	"github.com/planora/planora/internal/domain/schedule"
	"github.com/planora/planora/internal/generate"
	"github.com/planora/planora/internal/storage"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter replays canned replies and records the prompts it saw.
type scriptedCompleter struct {
	replies []string
	prompts []string
	fail    error
}

func (c *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.fail != nil {
		return "", c.fail
	}
	if len(c.prompts) > len(c.replies) {
		return "", nil
	}
	return c.replies[len(c.prompts)-1], nil
}

func TestChain_Generate(t *testing.T) {
	ctx := context.Background()
	completer := &scriptedCompleter{replies: []string{
		"```json\n[\"checklist\", \"schedule\", \"karaoke\"]\n```",
		`{"checklist": {"items":[{"id":"1","text":"invites","checked":false}]},
		  "schedule": {"items":[{"id":"2","text":"doors","time":"18:00"},{"id":"end","text":"End","time":"21:00"}]}}`,
		`{"title": "Housewarming", "description": "A small housewarming."}`,
	}}

	draft, err := generate.NewChain(completer, nil).Generate(ctx, "housewarming", "about ten people")
	require.NoError(t, err)
	require.Len(t, completer.prompts, 3)

	require.Equal(t, "Housewarming", draft.Title)
	require.Equal(t, "A small housewarming.", draft.Description)

	// Unknown component names are dropped.
	require.Len(t, draft.Components, 2)
	require.Equal(t, plan.ComponentChecklist, draft.Components[0].Name)
	require.Equal(t, plan.ComponentSchedule, draft.Components[1].Name)
	require.JSONEq(t, `{"items":[{"id":"1","text":"invites","checked":false}]}`, string(draft.Components[0].Content))
}

func TestChain_RejectsGarbage(t *testing.T) {
	ctx := context.Background()

	for name, replies := range map[string][]string{
		"unparseable selection": {"sure, here you go!"},
		"no usable components":  {`["karaoke", "fireworks"]`},
		"bad content":           {`["checklist"]`, "not json"},
		"empty title":           {`["checklist"]`, `{"checklist":{"items":[]}}`, `{"title":"  "}`},
	} {
		t.Run(name, func(t *testing.T) {
			completer := &scriptedCompleter{replies: replies}
			_, err := generate.NewChain(completer, nil).Generate(ctx, "party", "")
			require.Error(t, err)
		})
	}
}

func TestService_TemplateFallback(t *testing.T) {
	ctx := context.Background()
	repo := plan.NewRepository(storage.NewMemory(), nil)

	// A failing model degrades to the template instead of blocking creation.
	svc := generate.NewService(repo, &scriptedCompleter{fail: errors.New("model unavailable")}, nil)
	p, err := svc.NewPlan(ctx, "birthday", "for Noah, turning six")
	require.NoError(t, err)
	require.Equal(t, "Birthday Plan", p.Title)
	require.NotEmpty(t, p.Components)
	for i, component := range p.Components {
		require.Equal(t, i+1, component.Position)
		require.Equal(t, plan.StateMounted, component.State)
	}

	// The new plan became active.
	active, err := repo.Active(ctx)
	require.NoError(t, err)
	require.Equal(t, p.ID, active.ID)
}

func TestService_NoCompleter(t *testing.T) {
	ctx := context.Background()
	repo := plan.NewRepository(storage.NewMemory(), nil)
	svc := generate.NewService(repo, nil, nil)

	p, err := svc.NewPlan(ctx, "", "")
	require.NoError(t, err)
	require.Equal(t, "New Plan", p.Title)

	// The template schedule carries a well-formed sentinel.
	entry := p.Component(plan.ComponentSchedule)
	require.NotNil(t, entry)
	var content struct {
		Items []schedule.Activity `json:"items"`
	}
	require.NoError(t, json.Unmarshal(entry.Content, &content))
	require.NotEmpty(t, content.Items)
	last := content.Items[len(content.Items)-1]
	require.Equal(t, schedule.EndID, last.ID)
	_, err = schedule.ParseClock(last.Time)
	require.NoError(t, err)
}

func TestService_CancellationWritesNothing(t *testing.T) {
	repo := plan.NewRepository(storage.NewMemory(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	// The model call consumes the cancellation mid-chain.
	cancelling := completerFunc(func(ctx context.Context, _ string) (string, error) {
		cancel()
		return "", ctx.Err()
	})
	svc := generate.NewService(repo, cancelling, nil)

	_, err := svc.NewPlan(ctx, "party", "")
	require.ErrorIs(t, err, context.Canceled)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
	active, err := repo.Active(context.Background())
	require.NoError(t, err)
	require.Empty(t, active.ID)
}

type completerFunc func(ctx context.Context, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
