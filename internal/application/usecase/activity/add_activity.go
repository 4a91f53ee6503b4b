package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
)

// AddActivityInput represents the input for adding an activity to a goal.
type AddActivityInput struct {
	GoalID    uuid.UUID
	UserID    uuid.UUID
	Name      string
	Frequency string
	Deadline  *time.Time // Kept for Once activities only
}

// AddActivityOutput represents the output of adding an activity.
type AddActivityOutput struct {
	Goal     *entity.Goal
	Activity *entity.Activity
}

// AddActivityUseCase appends a new, incomplete activity to a goal.
type AddActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	recalculator *goal.ProgressRecalculator
}

// NewAddActivityUseCase creates a new AddActivityUseCase instance.
func NewAddActivityUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository, recalculator *goal.ProgressRecalculator) *AddActivityUseCase {
	return &AddActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		recalculator: recalculator,
	}
}

// Execute performs the activity insertion and returns the recomputed goal.
func (uc *AddActivityUseCase) Execute(ctx context.Context, input AddActivityInput) (*AddActivityOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	frequency, err := validateFrequency(input.Frequency)
	if err != nil {
		return nil, err
	}

	g, err := goal.FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activity := entity.NewActivity(g.ID, name, frequency, normalizeDeadline(frequency, input.Deadline), uc.recalculator.Now(ctx))

	if err := uc.activityRepo.Create(ctx, activity); err != nil {
		return nil, writeFailure(err, "add")
	}

	g, err = uc.recalculator.Recalculate(ctx, g)
	if err != nil {
		return nil, err
	}

	return &AddActivityOutput{
		Goal:     g,
		Activity: activity,
	}, nil
}
