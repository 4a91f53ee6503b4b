package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
)

// ToggleActivityInput represents the input for toggling an activity.
type ToggleActivityInput struct {
	GoalID     uuid.UUID
	ActivityID uuid.UUID
	UserID     uuid.UUID
}

// ToggleActivityOutput represents the output of toggling an activity.
type ToggleActivityOutput struct {
	Goal      *entity.Goal
	Activity  *entity.Activity
	Completed bool // Completion after the toggle
}

// ToggleActivityUseCase flips an activity between done and pending for its
// current period and recomputes the goal.
type ToggleActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	recalculator *goal.ProgressRecalculator
	metrics      adapter.MetricsRecorder
}

// NewToggleActivityUseCase creates a new ToggleActivityUseCase instance.
func NewToggleActivityUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	recalculator *goal.ProgressRecalculator,
	metrics adapter.MetricsRecorder,
) *ToggleActivityUseCase {
	if metrics == nil {
		metrics = adapter.NopMetrics{}
	}
	return &ToggleActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		recalculator: recalculator,
		metrics:      metrics,
	}
}

// Execute performs the toggle. The completion write must commit before the
// goal is recomputed.
func (uc *ToggleActivityUseCase) Execute(ctx context.Context, input ToggleActivityInput) (*ToggleActivityOutput, error) {
	g, err := goal.FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activity, err := findGoalActivity(ctx, uc.activityRepo, g, input.ActivityID)
	if err != nil {
		return nil, err
	}

	now := uc.recalculator.Now(ctx)
	record := activity.Toggled(now)

	if err := uc.activityRepo.UpdateCompletion(ctx, activity.ID, record.IsCompleted, record.LastCompletedAt); err != nil {
		uc.metrics.ActivityToggled("failed")
		return nil, writeFailure(err, "toggle")
	}
	activity.ApplyCompletion(record, now)

	if record.IsCompleted {
		uc.metrics.ActivityToggled("completed")
	} else {
		uc.metrics.ActivityToggled("cleared")
	}

	g, err = uc.recalculator.Recalculate(ctx, g)
	if err != nil {
		return nil, err
	}

	return &ToggleActivityOutput{
		Goal:      g,
		Activity:  activity,
		Completed: record.IsCompleted,
	}, nil
}
