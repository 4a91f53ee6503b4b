package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
)

// RemoveActivityInput represents the input for removing an activity.
type RemoveActivityInput struct {
	GoalID     uuid.UUID
	ActivityID uuid.UUID
	UserID     uuid.UUID
}

// RemoveActivityOutput represents the output of removing an activity.
type RemoveActivityOutput struct {
	Goal *entity.Goal
}

// RemoveActivityUseCase deletes an activity and recomputes its goal.
type RemoveActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	recalculator *goal.ProgressRecalculator
}

// NewRemoveActivityUseCase creates a new RemoveActivityUseCase instance.
func NewRemoveActivityUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository, recalculator *goal.ProgressRecalculator) *RemoveActivityUseCase {
	return &RemoveActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		recalculator: recalculator,
	}
}

// Execute performs the removal.
func (uc *RemoveActivityUseCase) Execute(ctx context.Context, input RemoveActivityInput) (*RemoveActivityOutput, error) {
	g, err := goal.FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activity, err := findGoalActivity(ctx, uc.activityRepo, g, input.ActivityID)
	if err != nil {
		return nil, err
	}

	if err := uc.activityRepo.Delete(ctx, activity.ID); err != nil {
		return nil, writeFailure(err, "remove")
	}

	g, err = uc.recalculator.Recalculate(ctx, g)
	if err != nil {
		return nil, err
	}

	return &RemoveActivityOutput{
		Goal: g,
	}, nil
}
