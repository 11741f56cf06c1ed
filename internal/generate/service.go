package generate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/planora/planora/internal/domain/plan"
)

// Service creates new plans from activity descriptions, generating content
// through the model chain when one is configured and falling back to the
// template otherwise.
type Service struct {
	repo   *plan.Repository
	chain  *Chain
	logger *slog.Logger
}

// NewService creates the plan-generation service. completer may be nil, in
// which case every plan comes from the template.
func NewService(repo *plan.Repository, completer Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{repo: repo, logger: logger}
	if completer != nil {
		s.chain = NewChain(completer, logger)
	}
	return s
}

// NewPlan generates a draft for the described activity and materializes it
// as a new active plan. Model failures degrade to the template; caller
// cancellation aborts before anything is written.
func (s *Service) NewPlan(ctx context.Context, activityType, activityDetails string) (*plan.Plan, error) {
	draft := s.draft(ctx, activityType, activityDetails)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	components := make([]plan.Component, 0, len(draft.Components))
	for i, dc := range draft.Components {
		components = append(components, plan.Component{
			Name:     dc.Name,
			Title:    dc.Title,
			Position: i + 1,
			State:    plan.StateMounted,
			Content:  dc.Content,
		})
	}
	return s.repo.Create(ctx, draft.Title, draft.Description, components...)
}

func (s *Service) draft(ctx context.Context, activityType, activityDetails string) *Draft {
	if s.chain == nil {
		return Template(activityType, activityDetails)
	}
	draft, err := s.chain.Generate(ctx, activityType, activityDetails)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("generation chain failed, using template", "error", err)
		}
		return Template(activityType, activityDetails)
	}
	return draft
}
