package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// UpdateGoalInput is a patch. Progress and status are derived and cannot be set.
type UpdateGoalInput struct {
	GoalID        uuid.UUID
	UserID        uuid.UUID
	Title         *string
	Description   *string
	Category      *string
	Priority      *entity.GoalPriority
	Deadline      *time.Time
	ClearDeadline bool
}

// UpdateGoalOutput carries the saved goal with its activities.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute applies the patch. A failed reload after the write is reported as
// stale, since the edit was kept.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		goal.Title = title
	}

	if input.Description != nil {
		goal.Description = strings.TrimSpace(*input.Description)
	}

	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		goal.Priority = *input.Priority
	}

	if input.Category != nil {
		category, err := resolveCategory(ctx, uc.categoryRepo, input.UserID, *input.Category)
		if err != nil {
			return nil, err
		}
		goal.Category = category
	}

	switch {
	case input.ClearDeadline:
		goal.Deadline = nil
	case input.Deadline != nil:
		goal.Deadline = dateOnly(input.Deadline)
	}

	goal.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, ReloadFailed(goal.ID, err)
	}
	goal.Activities = activities

	return &UpdateGoalOutput{
		Goal: goal,
	}, nil
}
