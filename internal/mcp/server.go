// Package mcp exposes the plan engine as an MCP server: plan lifecycle,
// generic list editing, and the time-reflowing schedule, all as tools over a
// stdio transport.
package mcp

import (
	"log/slog"

	"github.com/planora/planora/internal/domain/plan"
	"github.com/planora/planora/internal/generate"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `Planora manages local event plans. A plan is a set of
named component lists: checklist, schedule, guestlist, team, timeline, and
supplies. One plan at a time is "active"; every item tool operates on the
active plan. Schedule edits keep activity times consistent: times re-sort on
manual edits, and moving an activity reflows start times so every activity
keeps its duration, with the trailing "End" marker closing the day.`

// Config contains server dependencies.
type Config struct {
	Repo      *plan.Repository
	Content   *plan.ContentStore
	Generator *generate.Service
	Logger    *slog.Logger
}

// NewServer creates and configures the MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "planora",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, &services{
		repo:      cfg.Repo,
		content:   cfg.Content,
		generator: cfg.Generator,
		logger:    cfg.Logger,
	})

	return server
}
