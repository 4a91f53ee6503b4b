package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// RecomputeGoalsInput represents the input for a bulk recompute.
type RecomputeGoalsInput struct {
	UserID *uuid.UUID // Optional, all users when nil
	DryRun bool
}

// StaleGoal describes a goal whose cached aggregate differed from a fresh computation.
type StaleGoal struct {
	GoalID         uuid.UUID
	Title          string
	StoredProgress int
	StoredStatus   entity.GoalStatus
	Progress       int
	Status         entity.GoalStatus
}

// RecomputeGoalsOutput represents the output of a bulk recompute.
type RecomputeGoalsOutput struct {
	Checked int
	Stale   []StaleGoal
	Failed  int
}

// RecomputeGoalsUseCase recomputes every goal's aggregate against the current
// period. Recurring completions that rolled over since the last mutation make
// a stored aggregate stale; this brings the cache back in line.
type RecomputeGoalsUseCase struct {
	goalRepo     adapter.GoalRepository
	userRepo     adapter.UserRepository
	recalculator *ProgressRecalculator
}

// NewRecomputeGoalsUseCase creates a new RecomputeGoalsUseCase instance.
// userRepo may be nil, in which case every goal is evaluated in the location
// carried by the context.
func NewRecomputeGoalsUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	recalculator *ProgressRecalculator,
) *RecomputeGoalsUseCase {
	return &RecomputeGoalsUseCase{
		goalRepo:     goalRepo,
		userRepo:     userRepo,
		recalculator: recalculator,
	}
}

// Execute performs the bulk recompute. A failing goal is logged and counted
// without stopping the run.
func (uc *RecomputeGoalsUseCase) Execute(ctx context.Context, input RecomputeGoalsInput) (*RecomputeGoalsOutput, error) {
	goals, err := uc.goalRepo.FindAll(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	output := &RecomputeGoalsOutput{}
	locations := make(map[uuid.UUID]context.Context)
	for _, goal := range goals {
		if err := ctx.Err(); err != nil {
			return output, err
		}
		output.Checked++

		goalCtx, ok := locations[goal.UserID]
		if !ok {
			goalCtx = uc.ownerContext(ctx, goal.UserID)
			locations[goal.UserID] = goalCtx
		}

		storedProgress, storedStatus := goal.Progress, goal.Status

		if input.DryRun {
			activities, err := uc.recalculator.activityRepo.FindByGoalID(goalCtx, goal.ID)
			if err != nil {
				output.Failed++
				slog.Warn("failed to load activities", "goal_id", goal.ID, "error", err)
				continue
			}
			goal.Activities = activities
			goal.Recompute(uc.recalculator.Now(goalCtx))
		} else if _, err := uc.recalculator.Recalculate(goalCtx, goal); err != nil {
			output.Failed++
			continue
		}

		if goal.Progress != storedProgress || goal.Status != storedStatus {
			output.Stale = append(output.Stale, StaleGoal{
				GoalID:         goal.ID,
				Title:          goal.Title,
				StoredProgress: storedProgress,
				StoredStatus:   storedStatus,
				Progress:       goal.Progress,
				Status:         goal.Status,
			})
		}
	}

	return output, nil
}

// ownerContext returns ctx carrying the goal owner's timezone.
func (uc *RecomputeGoalsUseCase) ownerContext(ctx context.Context, userID uuid.UUID) context.Context {
	if uc.userRepo == nil {
		return ctx
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Warn("failed to load goal owner, using default timezone", "user_id", userID, "error", err)
		return ctx
	}
	return adapter.WithLocation(ctx, user.Location())
}
