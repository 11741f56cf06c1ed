// Package generate turns a short natural-language description of an event
// into a plan draft. The language model behind it is an opaque collaborator;
// when none is configured, or the model misbehaves, a static template plan
// stands in so creation never blocks on the model.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/planora/planora/internal/domain/plan"
)

// Completer is the single-prompt seam to the language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Draft is a generated plan before it is materialized into storage.
type Draft struct {
	Title       string
	Description string
	Components  []DraftComponent
}

// DraftComponent is one proposed component slot with its content payload.
type DraftComponent struct {
	Name    string
	Title   string
	Content json.RawMessage
}

// Chain runs the three sequential generation calls: component selection,
// then content, then title and description. Each call depends on the
// previous result, so there is never more than one request in flight, and
// the whole chain aborts as soon as its context is cancelled. A chain
// produces pure values only; nothing touches storage until the caller
// materializes the draft.
type Chain struct {
	completer Completer
	logger    *slog.Logger
}

// NewChain creates a generation chain over the given completer.
func NewChain(completer Completer, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{completer: completer, logger: logger}
}

// Generate produces a draft for the described activity.
func (c *Chain) Generate(ctx context.Context, activityType, activityDetails string) (*Draft, error) {
	names, err := c.selectComponents(ctx, activityType, activityDetails)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contents, err := c.generateContent(ctx, activityType, activityDetails, names)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title, description, err := c.generateTitle(ctx, activityType, activityDetails)
	if err != nil {
		return nil, err
	}

	draft := &Draft{Title: title, Description: description}
	for _, name := range names {
		draft.Components = append(draft.Components, DraftComponent{
			Name:    name,
			Title:   componentTitle(name),
			Content: contents[name],
		})
	}
	return draft, nil
}

func (c *Chain) selectComponents(ctx context.Context, activityType, activityDetails string) ([]string, error) {
	prompt := fmt.Sprintf(
		"You are planning a %s. Details: %s\n"+
			"From this fixed set of planning components: %s\n"+
			"reply with only a JSON array of the component names this plan needs.",
		activityType, activityDetails, strings.Join(plan.ComponentNames, ", "))
	reply, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("selecting components: %w", err)
	}

	var names []string
	if err := json.Unmarshal([]byte(extractJSON(reply)), &names); err != nil {
		return nil, fmt.Errorf("parsing component selection: %w", err)
	}
	kept := names[:0]
	for _, name := range names {
		if plan.KnownComponent(name) {
			kept = append(kept, name)
		}
	}
	if len(kept) == 0 {
		return nil, errors.New("component selection named no usable components")
	}
	return kept, nil
}

func (c *Chain) generateContent(ctx context.Context, activityType, activityDetails string, names []string) (map[string]json.RawMessage, error) {
	prompt := fmt.Sprintf(
		"You are planning a %s. Details: %s\n"+
			"For each of these components: %s\n"+
			"reply with only a JSON object mapping each component name to its "+
			`content as {"items": [...]}. Checklist, guestlist, and supplies `+
			`items are {"id","text","checked"}; team items are {"id","role","name"}; `+
			`timeline items are {"id","text"}; schedule items are {"id","text","time"} `+
			`with zero-padded HH:MM times in ascending order.`,
		activityType, activityDetails, strings.Join(names, ", "))
	reply, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	var contents map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSON(reply)), &contents); err != nil {
		return nil, fmt.Errorf("parsing generated content: %w", err)
	}
	return contents, nil
}

func (c *Chain) generateTitle(ctx context.Context, activityType, activityDetails string) (title, description string, err error) {
	prompt := fmt.Sprintf(
		"You are planning a %s. Details: %s\n"+
			`Reply with only a JSON object {"title","description"}: a short plan `+
			"title and a one-sentence description.",
		activityType, activityDetails)
	reply, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("generating title: %w", err)
	}

	var out struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(extractJSON(reply)), &out); err != nil {
		return "", "", fmt.Errorf("parsing title: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" {
		return "", "", errors.New("generated title is empty")
	}
	return out.Title, out.Description, nil
}

// extractJSON strips markdown code fences that chat models like to wrap
// around JSON replies.
func extractJSON(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") {
		return reply
	}
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	return strings.TrimSpace(reply)
}

func componentTitle(name string) string {
	switch name {
	case plan.ComponentChecklist:
		return "Checklist"
	case plan.ComponentSchedule:
		return "Schedule"
	case plan.ComponentGuestlist:
		return "Guest List"
	case plan.ComponentTeam:
		return "Team"
	case plan.ComponentTimeline:
		return "Timeline"
	case plan.ComponentSupplies:
		return "Supplies"
	default:
		return name
	}
}
