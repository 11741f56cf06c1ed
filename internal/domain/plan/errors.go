package plan

import "errors"

var (
	// ErrPlanNotFound indicates the plan doesn't exist (or its stored
	// document is unreadable, which is treated the same way).
	ErrPlanNotFound = errors.New("plan not found")
	// ErrNoActivePlan indicates a write was attempted with no active plan.
	ErrNoActivePlan = errors.New("no active plan")
	// ErrInvalidInput indicates invalid plan input.
	ErrInvalidInput = errors.New("invalid plan input")
)
