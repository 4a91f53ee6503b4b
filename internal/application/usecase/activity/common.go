// Package activity contains the goal activity use cases. Every mutation that
// can change completion writes the activity first and then recomputes the goal.
package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/domain/valueobject"
)

// MaxActivityNameLength is the maximum allowed length for activity names.
const MaxActivityNameLength = 200

// findGoalActivity loads an activity and checks that it belongs to goal.
func findGoalActivity(ctx context.Context, activityRepo adapter.ActivityRepository, goal *entity.Goal, activityID uuid.UUID) (*entity.Activity, error) {
	activity, err := activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domainerror.ErrActivityNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	if activity.GoalID != goal.ID {
		return nil, notFoundError()
	}
	return activity, nil
}

// writeFailure classifies a failed activity write. Nothing was changed.
func writeFailure(err error, action string) error {
	if errors.Is(err, domainerror.ErrActivityNotFound) {
		return notFoundError()
	}
	return domainerror.NewActivityError(
		domainerror.ErrCodeActivityWriteFailed,
		fmt.Sprintf("failed to %s activity", action),
		fmt.Errorf("%w: %w", domainerror.ErrActivityWriteFailed, err),
	)
}

func notFoundError() error {
	return domainerror.NewActivityError(
		domainerror.ErrCodeActivityNotFound,
		"activity not found",
		domainerror.ErrActivityNotFound,
	)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domainerror.NewActivityError(
			domainerror.ErrCodeActivityNameRequired,
			"activity name is required",
			domainerror.ErrActivityNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxActivityNameLength {
		return "", domainerror.NewActivityError(
			domainerror.ErrCodeActivityNameTooLong,
			fmt.Sprintf("activity name must not exceed %d characters", MaxActivityNameLength),
			domainerror.ErrActivityNameTooLong,
		)
	}
	return name, nil
}

func validateFrequency(raw string) (valueobject.Frequency, error) {
	frequency, ok := valueobject.ParseFrequency(raw)
	if !ok {
		return "", domainerror.NewActivityError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'Daily', 'Weekly', 'Monthly', or 'Once'",
			domainerror.ErrInvalidFrequency,
		)
	}
	return frequency, nil
}

// normalizeDeadline keeps a deadline only for Once activities, as a UTC date.
func normalizeDeadline(frequency valueobject.Frequency, deadline *time.Time) *time.Time {
	if deadline == nil || frequency != valueobject.FrequencyOnce {
		return nil
	}
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
