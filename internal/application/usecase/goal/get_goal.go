package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// GetGoalInput identifies the goal and the user asking for it.
type GetGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetGoalOutput carries the goal with its activities in creation order.
type GetGoalOutput struct {
	Goal *entity.Goal
}

// GetGoalUseCase returns a goal with its activities. Progress and status are
// returned as stored; reading never writes.
type GetGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
	}
}

// Execute loads the goal, checks ownership and attaches its activities.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	goal.Activities = activities

	return &GetGoalOutput{
		Goal: goal,
	}, nil
}
