package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/planora/planora/internal/domain/list"
	"github.com/planora/planora/internal/domain/plan"
	"github.com/planora/planora/internal/domain/schedule"
)

// Template returns the static fallback draft used when no model is
// configured or the generation chain fails.
func Template(activityType, activityDetails string) *Draft {
	title := "New Plan"
	if t := list.CollapseLine(activityType); t != "" {
		title = fmt.Sprintf("%s Plan", capitalize(t))
	}

	return &Draft{
		Title:       title,
		Description: list.CollapseLine(activityDetails),
		Components: []DraftComponent{
			{
				Name:  plan.ComponentChecklist,
				Title: "Checklist",
				Content: entries(
					"Pick a date and time",
					"Choose and book the venue",
					"Send invitations",
					"Confirm headcount",
				),
			},
			{
				Name:  plan.ComponentSchedule,
				Title: "Schedule",
				Content: activities(
					activity("Setup and decoration", "16:00"),
					activity("Guests arrive", "17:00"),
					activity("Food is served", "18:00"),
					schedule.Activity{ID: schedule.EndID, Text: schedule.DefaultEndText, Time: "20:00"},
				),
			},
			{
				Name:    plan.ComponentGuestlist,
				Title:   "Guest List",
				Content: entries(),
			},
			{
				Name:    plan.ComponentTeam,
				Title:   "Team",
				Content: json.RawMessage(`{"items":[]}`),
			},
			{
				Name:  plan.ComponentSupplies,
				Title: "Supplies",
				Content: entries(
					"Plates, cups, and napkins",
					"Drinks",
					"Decorations",
				),
			},
		},
	}
}

func entries(texts ...string) json.RawMessage {
	items := make([]list.Entry, 0, len(texts))
	for _, text := range texts {
		items = append(items, list.Entry{ID: list.NewID(), Text: text})
	}
	raw, _ := json.Marshal(struct {
		Items []list.Entry `json:"items"`
	}{Items: items})
	return raw
}

func activity(text, timeOfDay string) schedule.Activity {
	return schedule.Activity{ID: list.NewID(), Text: text, Time: timeOfDay}
}

func activities(items ...schedule.Activity) json.RawMessage {
	raw, _ := json.Marshal(struct {
		Items []schedule.Activity `json:"items"`
	}{Items: items})
	return raw
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
