package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/domain/valueobject"
)

// UpdateActivityInput represents the input for editing an activity.
type UpdateActivityInput struct {
	GoalID        uuid.UUID
	ActivityID    uuid.UUID
	UserID        uuid.UUID
	Name          *string
	Frequency     *string
	Deadline      *time.Time
	ClearDeadline bool
}

// UpdateActivityOutput represents the output of editing an activity.
type UpdateActivityOutput struct {
	Goal     *entity.Goal
	Activity *entity.Activity
}

// UpdateActivityUseCase edits an activity's name, frequency or deadline.
// Completion fields are untouched and the stored goal aggregate is not
// recomputed; a new frequency applies at the next evaluation against the
// existing completion timestamp.
type UpdateActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	clock        adapter.Clock
}

// NewUpdateActivityUseCase creates a new UpdateActivityUseCase instance.
func NewUpdateActivityUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository, clock adapter.Clock) *UpdateActivityUseCase {
	return &UpdateActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		clock:        clock,
	}
}

// Execute performs the edit. Once the write has committed, a failed reload
// is reported as a stale GoalError rather than a plain failure.
func (uc *UpdateActivityUseCase) Execute(ctx context.Context, input UpdateActivityInput) (*UpdateActivityOutput, error) {
	var (
		name      *string
		frequency *valueobject.Frequency
	)
	if input.Name != nil {
		n, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = &n
	}
	if input.Frequency != nil {
		f, err := validateFrequency(*input.Frequency)
		if err != nil {
			return nil, err
		}
		frequency = &f
	}

	g, err := goal.FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activity, err := findGoalActivity(ctx, uc.activityRepo, g, input.ActivityID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		activity.Name = *name
	}
	if frequency != nil {
		activity.Frequency = *frequency
	}
	switch {
	case input.ClearDeadline:
		activity.Deadline = nil
	case input.Deadline != nil:
		activity.Deadline = input.Deadline
	}
	activity.Deadline = normalizeDeadline(activity.Frequency, activity.Deadline)
	activity.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.activityRepo.Update(ctx, activity); err != nil {
		return nil, writeFailure(err, "update")
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, g.ID)
	if err != nil {
		return nil, goal.ReloadFailed(g.ID, err)
	}
	g.Activities = activities

	return &UpdateActivityOutput{
		Goal:     g,
		Activity: activity,
	}, nil
}
