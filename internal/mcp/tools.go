package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/planora/planora/internal/domain/list"
	"github.com/planora/planora/internal/domain/plan"
	"github.com/planora/planora/internal/domain/schedule"
	"github.com/planora/planora/internal/generate"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type services struct {
	repo      *plan.Repository
	content   *plan.ContentStore
	generator *generate.Service
	logger    *slog.Logger
}

// Item is the wire shape shared by every list variant.
type Item struct {
	ID      string `json:"id"`
	Text    string `json:"text,omitempty"`
	Checked *bool  `json:"checked,omitempty"`
	Role    string `json:"role,omitempty"`
	Name    string `json:"name,omitempty"`
	Time    string `json:"time,omitempty"`
}

// Plan tool parameters and results.

type CreatePlanParams struct {
	ActivityType    string `json:"activity_type" jsonschema:"the kind of event being planned, e.g. birthday or retro"`
	ActivityDetails string `json:"activity_details,omitempty" jsonschema:"free-form details about the event"`
}

type PlanIDParams struct {
	ID string `json:"id,omitempty" jsonschema:"plan id; omit to use the active plan"`
}

type DeletePlanParams struct {
	ID string `json:"id" jsonschema:"plan id to delete"`
}

type RenamePlanParams struct {
	ID          string `json:"id,omitempty" jsonschema:"plan id; omit to use the active plan"`
	Title       string `json:"title" jsonschema:"new plan title"`
	Description string `json:"description,omitempty" jsonschema:"new plan description"`
}

// PlanInfo is the wire shape of a plan document. Component content is
// reached through list_items rather than inlined here.
type PlanInfo struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Components  []ComponentInfo `json:"components"`
}

type ComponentInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	State    string `json:"state"`
}

type PlanSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PlanListResult struct {
	Plans    []PlanSummary `json:"plans"`
	ActiveID string        `json:"active_id,omitempty"`
}

type StatusResult struct {
	Status string `json:"status"`
}

// Item tool parameters and results.

type ListItemsParams struct {
	Component string `json:"component" jsonschema:"component slot: checklist, schedule, guestlist, team, timeline, or supplies"`
}

type AddItemParams struct {
	Component string `json:"component" jsonschema:"component slot to add to"`
	Text      string `json:"text,omitempty" jsonschema:"item text (all slots except team)"`
	Role      string `json:"role,omitempty" jsonschema:"member role (team only)"`
	Name      string `json:"name,omitempty" jsonschema:"member name (team only)"`
}

type UpdateItemParams struct {
	Component string `json:"component" jsonschema:"component slot the item lives in"`
	ID        string `json:"id" jsonschema:"item id"`
	Text      string `json:"text,omitempty" jsonschema:"replacement text; blank deletes the item"`
	Role      string `json:"role,omitempty" jsonschema:"replacement role (team only)"`
	Name      string `json:"name,omitempty" jsonschema:"replacement name (team only)"`
}

type ItemIDParams struct {
	Component string `json:"component" jsonschema:"component slot the item lives in"`
	ID        string `json:"id" jsonschema:"item id"`
}

type MoveItemParams struct {
	Component string `json:"component" jsonschema:"component slot the item lives in"`
	ID        string `json:"id" jsonschema:"item id to move"`
	ToIndex   int    `json:"to_index" jsonschema:"target position counted before removal, 0-based"`
}

type ItemsResult struct {
	Component string `json:"component"`
	Items     []Item `json:"items"`
}

// Schedule tool parameters.

type AddActivityParams struct {
	Text string `json:"text" jsonschema:"activity description"`
	Time string `json:"time,omitempty" jsonschema:"start time HH:MM for the first activity; later activities start where the schedule ends"`
}

type ActivityTimeParams struct {
	ID   string `json:"id" jsonschema:"activity id, or 'end' for the closing marker"`
	Time string `json:"time" jsonschema:"new start time, zero-padded HH:MM"`
}

type ActivityTextParams struct {
	ID   string `json:"id" jsonschema:"activity id, or 'end' for the closing marker"`
	Text string `json:"text" jsonschema:"new activity text; blank deletes ordinary activities"`
}

type MoveActivityParams struct {
	ID      string `json:"id" jsonschema:"activity id to move"`
	ToIndex int    `json:"to_index" jsonschema:"target position counted before removal, 0-based"`
}

func registerTools(server *sdkmcp.Server, svc *services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_plan",
		Description: "Generate a new plan from an activity description and make it active",
	}, svc.createPlan)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_plans",
		Description: "List all known plans with their timestamps",
	}, svc.listPlans)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_plan",
		Description: "Get a full plan document, defaulting to the active plan",
	}, svc.getPlan)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a plan and its index entry; clears the active pointer if it pointed here",
	}, svc.deletePlan)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activate_plan",
		Description: "Make the given plan the active one",
	}, svc.activatePlan)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_plan",
		Description: "Change a plan's title and description",
	}, svc.renamePlan)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_items",
		Description: "List the items of one component of the active plan",
	}, svc.listItems)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_item",
		Description: "Add an item to a component of the active plan",
	}, svc.addItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_item",
		Description: "Replace an item's fields; fields that normalize to blank delete the item",
	}, svc.updateItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_item",
		Description: "Flip an item's checked state (checklist, guestlist, supplies)",
	}, svc.toggleItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_item",
		Description: "Remove an item from a component of the active plan",
	}, svc.removeItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_item",
		Description: "Move an item to a new position; schedule moves reflow activity times",
	}, svc.moveItem)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_activity",
		Description: "Append an activity to the schedule, extending the End marker",
	}, svc.addActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_activity_time",
		Description: "Set an activity's start time; the schedule re-sorts and the End marker keeps its distance",
	}, svc.setActivityTime)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_activity_text",
		Description: "Rename a schedule activity",
	}, svc.setActivityText)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_activity",
		Description: "Move a schedule activity, reflowing start times so durations are preserved",
	}, svc.moveActivity)
}

func (s *services) scheduleEngine() *schedule.Engine {
	return schedule.NewEngine(s.content, plan.ComponentSchedule, nil, s.logger, nil)
}

func (s *services) createPlan(ctx context.Context, _ *sdkmcp.CallToolRequest, params CreatePlanParams) (*sdkmcp.CallToolResult, PlanInfo, error) {
	p, err := s.generator.NewPlan(ctx, params.ActivityType, params.ActivityDetails)
	if err != nil {
		return nil, PlanInfo{}, mapError(err)
	}
	return nil, planInfo(p), nil
}

func (s *services) listPlans(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, PlanListResult, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, PlanListResult{}, mapError(err)
	}
	active, err := s.repo.Active(ctx)
	if err != nil {
		return nil, PlanListResult{}, mapError(err)
	}
	summaries := make([]PlanSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, PlanSummary{
			ID:        e.ID,
			Title:     e.Title,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
			UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
		})
	}
	return nil, PlanListResult{Plans: summaries, ActiveID: active.ID}, nil
}

func (s *services) getPlan(ctx context.Context, _ *sdkmcp.CallToolRequest, params PlanIDParams) (*sdkmcp.CallToolResult, PlanInfo, error) {
	id, err := s.resolveID(ctx, params.ID)
	if err != nil {
		return nil, PlanInfo{}, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, PlanInfo{}, mapError(err)
	}
	return nil, planInfo(p), nil
}

func (s *services) deletePlan(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeletePlanParams) (*sdkmcp.CallToolResult, StatusResult, error) {
	if err := s.repo.Delete(ctx, params.ID); err != nil {
		return nil, StatusResult{}, mapError(err)
	}
	return nil, StatusResult{Status: "deleted"}, nil
}

func (s *services) activatePlan(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeletePlanParams) (*sdkmcp.CallToolResult, StatusResult, error) {
	p, err := s.repo.Get(ctx, params.ID)
	if err != nil {
		return nil, StatusResult{}, mapError(err)
	}
	err = s.repo.SetActive(ctx, plan.ActivePlan{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
	if err != nil {
		return nil, StatusResult{}, mapError(err)
	}
	return nil, StatusResult{Status: "active"}, nil
}

func (s *services) renamePlan(ctx context.Context, _ *sdkmcp.CallToolRequest, params RenamePlanParams) (*sdkmcp.CallToolResult, PlanInfo, error) {
	id, err := s.resolveID(ctx, params.ID)
	if err != nil {
		return nil, PlanInfo{}, err
	}
	p, err := s.repo.Rename(ctx, id, params.Title, params.Description)
	if err != nil {
		return nil, PlanInfo{}, mapError(err)
	}
	return nil, planInfo(p), nil
}

func planInfo(p *plan.Plan) PlanInfo {
	components := make([]ComponentInfo, 0, len(p.Components))
	for _, c := range p.Components {
		components = append(components, ComponentInfo{
			Name:     c.Name,
			Title:    c.Title,
			Position: c.Position,
			State:    c.State,
		})
	}
	return PlanInfo{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
		Components:  components,
	}
}

// resolveID defaults an omitted plan id to the active plan.
func (s *services) resolveID(ctx context.Context, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	active, err := s.repo.Active(ctx)
	if err != nil {
		return "", mapError(err)
	}
	if active.ID == "" {
		return "", mapError(plan.ErrNoActivePlan)
	}
	return active.ID, nil
}

func (s *services) listItems(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListItemsParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	items, err := s.componentItems(ctx, params.Component)
	if err != nil {
		return nil, ItemsResult{}, err
	}
	return nil, ItemsResult{Component: params.Component, Items: items}, nil
}

func (s *services) addItem(ctx context.Context, _ *sdkmcp.CallToolRequest, params AddItemParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	var err error
	switch params.Component {
	case plan.ComponentChecklist, plan.ComponentGuestlist, plan.ComponentSupplies:
		err = s.checkList(params.Component).Add(ctx, params.Text)
	case plan.ComponentTimeline:
		err = s.noteList().Add(ctx, params.Text)
	case plan.ComponentTeam:
		err = s.teamList().Add(ctx, params.Role, params.Name)
	case plan.ComponentSchedule:
		err = s.scheduleEngine().Add(ctx, params.Text, "")
	default:
		return nil, ItemsResult{}, errUnknownComponent(params.Component)
	}
	return s.itemsAfter(ctx, params.Component, err)
}

func (s *services) updateItem(ctx context.Context, _ *sdkmcp.CallToolRequest, params UpdateItemParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	var err error
	switch params.Component {
	case plan.ComponentChecklist, plan.ComponentGuestlist, plan.ComponentSupplies:
		err = s.checkList(params.Component).SetText(ctx, params.ID, params.Text)
	case plan.ComponentTimeline:
		err = s.noteList().SetText(ctx, params.ID, params.Text)
	case plan.ComponentTeam:
		err = s.teamList().SetFields(ctx, params.ID, params.Role, params.Name)
	case plan.ComponentSchedule:
		err = s.scheduleEngine().UpdateText(ctx, params.ID, params.Text)
	default:
		return nil, ItemsResult{}, errUnknownComponent(params.Component)
	}
	return s.itemsAfter(ctx, params.Component, err)
}

func (s *services) toggleItem(ctx context.Context, _ *sdkmcp.CallToolRequest, params ItemIDParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	switch params.Component {
	case plan.ComponentChecklist, plan.ComponentGuestlist, plan.ComponentSupplies:
		return s.itemsAfter(ctx, params.Component, s.checkList(params.Component).Toggle(ctx, params.ID))
	case plan.ComponentSchedule, plan.ComponentTeam, plan.ComponentTimeline:
		return nil, ItemsResult{}, errNotToggleable(params.Component)
	default:
		return nil, ItemsResult{}, errUnknownComponent(params.Component)
	}
}

func (s *services) removeItem(ctx context.Context, _ *sdkmcp.CallToolRequest, params ItemIDParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	var err error
	switch params.Component {
	case plan.ComponentChecklist, plan.ComponentGuestlist, plan.ComponentSupplies:
		err = s.checkList(params.Component).Remove(ctx, params.ID)
	case plan.ComponentTimeline:
		err = s.noteList().Remove(ctx, params.ID)
	case plan.ComponentTeam:
		err = s.teamList().Remove(ctx, params.ID)
	case plan.ComponentSchedule:
		// Schedule rows go through the engine so the sentinel survives.
		err = s.scheduleEngine().UpdateText(ctx, params.ID, "")
	default:
		return nil, ItemsResult{}, errUnknownComponent(params.Component)
	}
	return s.itemsAfter(ctx, params.Component, err)
}

func (s *services) moveItem(ctx context.Context, _ *sdkmcp.CallToolRequest, params MoveItemParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	var err error
	switch params.Component {
	case plan.ComponentChecklist, plan.ComponentGuestlist, plan.ComponentSupplies:
		err = s.checkList(params.Component).Move(ctx, params.ID, params.ToIndex)
	case plan.ComponentTimeline:
		err = s.noteList().Move(ctx, params.ID, params.ToIndex)
	case plan.ComponentTeam:
		err = s.teamList().Move(ctx, params.ID, params.ToIndex)
	case plan.ComponentSchedule:
		err = s.scheduleEngine().Move(ctx, params.ID, params.ToIndex)
	default:
		return nil, ItemsResult{}, errUnknownComponent(params.Component)
	}
	return s.itemsAfter(ctx, params.Component, err)
}

func (s *services) addActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, params AddActivityParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	err := s.scheduleEngine().Add(ctx, params.Text, params.Time)
	return s.itemsAfter(ctx, plan.ComponentSchedule, err)
}

func (s *services) setActivityTime(ctx context.Context, _ *sdkmcp.CallToolRequest, params ActivityTimeParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	err := s.scheduleEngine().UpdateTime(ctx, params.ID, params.Time)
	return s.itemsAfter(ctx, plan.ComponentSchedule, err)
}

func (s *services) setActivityText(ctx context.Context, _ *sdkmcp.CallToolRequest, params ActivityTextParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	err := s.scheduleEngine().UpdateText(ctx, params.ID, params.Text)
	return s.itemsAfter(ctx, plan.ComponentSchedule, err)
}

func (s *services) moveActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, params MoveActivityParams) (*sdkmcp.CallToolResult, ItemsResult, error) {
	err := s.scheduleEngine().Move(ctx, params.ID, params.ToIndex)
	return s.itemsAfter(ctx, plan.ComponentSchedule, err)
}

func (s *services) checkList(component string) *list.CheckList {
	return list.NewCheckList(s.content, component, nil, s.logger)
}

func (s *services) noteList() *list.NoteList {
	return list.NewNoteList(s.content, plan.ComponentTimeline, nil, s.logger)
}

func (s *services) teamList() *list.TeamList {
	return list.NewTeamList(s.content, plan.ComponentTeam, nil, s.logger)
}

// itemsAfter returns the fresh list after a mutation, re-read from storage
// rather than echoed from memory.
func (s *services) itemsAfter(ctx context.Context, component string, err error) (*sdkmcp.CallToolResult, ItemsResult, error) {
	if err != nil {
		return nil, ItemsResult{}, mapError(err)
	}
	items, err := s.componentItems(ctx, component)
	if err != nil {
		return nil, ItemsResult{}, err
	}
	return nil, ItemsResult{Component: component, Items: items}, nil
}

func (s *services) componentItems(ctx context.Context, component string) ([]Item, error) {
	switch component {
	case plan.ComponentChecklist, plan.ComponentGuestlist, plan.ComponentSupplies:
		entries, err := s.checkList(component).Items(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		items := make([]Item, 0, len(entries))
		for _, e := range entries {
			checked := e.Checked
			items = append(items, Item{ID: e.ID, Text: e.Text, Checked: &checked})
		}
		return items, nil
	case plan.ComponentTimeline:
		notes, err := s.noteList().Items(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		items := make([]Item, 0, len(notes))
		for _, n := range notes {
			items = append(items, Item{ID: n.ID, Text: n.Text})
		}
		return items, nil
	case plan.ComponentTeam:
		members, err := s.teamList().Items(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		items := make([]Item, 0, len(members))
		for _, m := range members {
			items = append(items, Item{ID: m.ID, Role: m.Role, Name: m.Name})
		}
		return items, nil
	case plan.ComponentSchedule:
		activities, err := s.scheduleEngine().Activities(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		items := make([]Item, 0, len(activities))
		for _, a := range activities {
			items = append(items, Item{ID: a.ID, Text: a.Text, Time: a.Time})
		}
		return items, nil
	default:
		return nil, errUnknownComponent(component)
	}
}
