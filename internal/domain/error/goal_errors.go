// Package error defines domain-specific errors for the LifeScope application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalTitleRequired is returned when a goal is saved without a title.
	ErrGoalTitleRequired = errors.New("goal title is required")

	// ErrGoalTitleTooLong is returned when the goal title exceeds the maximum length.
	ErrGoalTitleTooLong = errors.New("goal title too long")

	// ErrInvalidGoalPriority is returned when the priority is not High, Medium or Low.
	ErrInvalidGoalPriority = errors.New("invalid goal priority")

	// ErrInvalidGoalStatus is returned when a status filter is unknown.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrGoalCategoryNotFound is returned when the goal category is neither a default nor a custom category of the user.
	ErrGoalCategoryNotFound = errors.New("goal category not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrGoalAggregateStale is returned when an activity change committed but the
	// recomputed progress could not be saved.
	ErrGoalAggregateStale = errors.New("goal progress is stale")

	// ErrGoalActivitiesUnavailable is returned when a goal's activities could not be loaded for recomputation.
	ErrGoalActivitiesUnavailable = errors.New("goal activities could not be loaded")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeGoalTitleRequired      GoalErrorCode = "GOL-010002"
	ErrCodeGoalTitleTooLong       GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalPriority    GoalErrorCode = "GOL-010004"
	ErrCodeGoalCategoryNotFound   GoalErrorCode = "GOL-010005"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010006"
	ErrCodeInvalidGoalStatus      GoalErrorCode = "GOL-010007"
	ErrCodeInvalidGoalDeadline    GoalErrorCode = "GOL-010008"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010009"

	// Persistence errors (02XXXX)
	ErrCodeGoalAggregateStale        GoalErrorCode = "GOL-020001"
	ErrCodeGoalActivitiesUnavailable GoalErrorCode = "GOL-020002"
)

// GoalError is returned by goal reads and writes. Stale codes mean an
// activity write landed but the goal aggregate could not be refreshed.
type GoalError struct {
	CodedError[GoalErrorCode]
}

// IsStale reports whether the underlying activity change was kept.
func (e *GoalError) IsStale() bool {
	return e.Code == ErrCodeGoalAggregateStale || e.Code == ErrCodeGoalActivitiesUnavailable
}

func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{CodedError: *newCoded(code, message, err)}
}
