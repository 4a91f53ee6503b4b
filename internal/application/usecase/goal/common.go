// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// MaxGoalTitleLength is the maximum allowed length for goal titles.
const MaxGoalTitleLength = 200

// FindOwnedGoal loads a goal and checks that userID owns it. Activities are not loaded.
func FindOwnedGoal(ctx context.Context, goalRepo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}

// ReloadFailed reports that a write committed but the goal's activities
// could not be read back. The error is stale, so clients know to re-fetch
// instead of retrying the write.
func ReloadFailed(goalID uuid.UUID, err error) error {
	slog.Error("failed to reload activities after write", "goal_id", goalID, "error", err)
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalActivitiesUnavailable,
		"change saved but the goal could not be reloaded",
		fmt.Errorf("%w: %w", domainerror.ErrGoalActivitiesUnavailable, err),
	)
}

// resolveCategory returns the stored spelling of a default or custom category name.
func resolveCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, userID uuid.UUID, name string) (string, error) {
	if canonical, ok := entity.DefaultCategoryName(name); ok {
		return canonical, nil
	}

	custom, err := categoryRepo.FindByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return "", domainerror.NewGoalError(
				domainerror.ErrCodeGoalCategoryNotFound,
				fmt.Sprintf("category %q does not exist", strings.TrimSpace(name)),
				domainerror.ErrGoalCategoryNotFound,
			)
		}
		return "", fmt.Errorf("failed to find category: %w", err)
	}
	return custom.Name, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleRequired,
			"title is required",
			domainerror.ErrGoalTitleRequired,
		)
	}
	if utf8.RuneCountInString(title) > MaxGoalTitleLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleTooLong,
			fmt.Sprintf("title must not exceed %d characters", MaxGoalTitleLength),
			domainerror.ErrGoalTitleTooLong,
		)
	}
	return title, nil
}

func validatePriority(priority entity.GoalPriority) error {
	if !priority.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPriority,
			"priority must be 'High', 'Medium', or 'Low'",
			domainerror.ErrInvalidGoalPriority,
		)
	}
	return nil
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
