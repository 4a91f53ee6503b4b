package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type ListGoalsInput struct {
	UserID   uuid.UUID
	Status   *entity.GoalStatus // Optional filter
	Category *string            // Optional filter
}

type ListGoalsOutput struct {
	Goals []*entity.Goal
}

// ListGoalsUseCase handles listing goals with their activities.
type ListGoalsUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
}

func NewListGoalsUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
	}
}

func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"status must be 'Not Started', 'In Progress', or 'Completed'",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID, adapter.GoalFilter{
		Status:   input.Status,
		Category: input.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	ids := make([]uuid.UUID, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}

	byGoal, err := uc.activityRepo.FindByGoalIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	for _, g := range goals {
		if activities, ok := byGoal[g.ID]; ok {
			g.Activities = activities
		}
	}

	return &ListGoalsOutput{
		Goals: goals,
	}, nil
}
