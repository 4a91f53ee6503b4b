package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
)

// DeleteGoalInput identifies the goal to remove and its owner.
type DeleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteGoalOutput reports what was removed.
type DeleteGoalOutput struct {
	Title             string
	RemovedActivities int
}

// DeleteGoalUseCase deletes a goal together with its activities.
type DeleteGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
}

func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
	}
}

// Execute checks ownership, then removes the goal. Activities go with it in
// the same store operation; the count is read beforehand for the log.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) (*DeleteGoalOutput, error) {
	goal, err := FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
		return nil, fmt.Errorf("failed to delete goal: %w", err)
	}

	slog.Info("goal deleted", "goal_id", goal.ID, "user_id", goal.UserID, "activities", len(activities))
	return &DeleteGoalOutput{
		Title:             goal.Title,
		RemovedActivities: len(activities),
	}, nil
}
