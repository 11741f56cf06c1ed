package mcp

import (
	"errors"
	"fmt"

	"github.com/planora/planora/internal/domain/plan"
)

// APIError is an MCP tool error with a stable code.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// mapError maps domain errors to coded API errors; unknown errors pass
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, plan.ErrPlanNotFound):
		return &APIError{Code: "PLAN_NOT_FOUND", Message: "plan not found", RecoveryHint: "Check the id against list_plans"}
	case errors.Is(err, plan.ErrNoActivePlan):
		return &APIError{Code: "NO_ACTIVE_PLAN", Message: "no plan is active", RecoveryHint: "Create a plan or call activate_plan first"}
	case errors.Is(err, plan.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid plan input"}
	default:
		return err
	}
}

func errNotToggleable(name string) error {
	return &APIError{
		Code:         "NOT_TOGGLEABLE",
		Message:      fmt.Sprintf("component %q has no checked state", name),
		RecoveryHint: "Toggle only works on checklist, guestlist, and supplies",
	}
}

func errUnknownComponent(name string) error {
	return &APIError{
		Code:         "UNKNOWN_COMPONENT",
		Message:      fmt.Sprintf("unknown component %q", name),
		RecoveryHint: "Use one of: checklist, schedule, guestlist, team, timeline, supplies",
	}
}
