package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// ProgressRecalculator reloads a goal's activities, recomputes the aggregate
// and persists it. It runs after every add, remove and toggle.
type ProgressRecalculator struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	clock        adapter.Clock
	metrics      adapter.MetricsRecorder
	notifier     adapter.GoalNotifier
}

// NewProgressRecalculator creates a new ProgressRecalculator instance.
func NewProgressRecalculator(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	clock adapter.Clock,
	metrics adapter.MetricsRecorder,
) *ProgressRecalculator {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	if metrics == nil {
		metrics = adapter.NopMetrics{}
	}
	return &ProgressRecalculator{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		clock:        clock,
		metrics:      metrics,
	}
}

// WithNotifier registers n to hear about goals that become Completed.
func (r *ProgressRecalculator) WithNotifier(n adapter.GoalNotifier) *ProgressRecalculator {
	r.notifier = n
	return r
}

// Now returns the current time in the caller's location.
func (r *ProgressRecalculator) Now(ctx context.Context) time.Time {
	return r.clock.Now().In(adapter.LocationFromContext(ctx))
}

// Recalculate refreshes goal.Activities, goal.Progress and goal.Status and saves
// the aggregate. Every failure it returns is a stale-aggregate GoalError: the
// caller's activity write has already committed.
func (r *ProgressRecalculator) Recalculate(ctx context.Context, goal *entity.Goal) (*entity.Goal, error) {
	activities, err := r.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		r.metrics.GoalAggregateStale()
		slog.Error("failed to load activities for recompute", "goal_id", goal.ID, "error", err)
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalActivitiesUnavailable,
			"activity saved but goal progress could not be recomputed",
			fmt.Errorf("%w: %w", domainerror.ErrGoalActivitiesUnavailable, err),
		)
	}

	previous := goal.Status
	goal.Activities = activities
	goal.Recompute(r.Now(ctx))

	if err := r.goalRepo.UpdateProgress(ctx, goal.ID, goal.Progress, goal.Status); err != nil {
		r.metrics.GoalAggregateStale()
		slog.Error("failed to persist goal progress",
			"goal_id", goal.ID,
			"progress", goal.Progress,
			"status", goal.Status,
			"error", err,
		)
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAggregateStale,
			"activity saved but goal progress is stale",
			fmt.Errorf("%w: %w", domainerror.ErrGoalAggregateStale, err),
		)
	}

	r.metrics.GoalRecomputed(goal.Status)

	if r.notifier != nil && previous != entity.GoalStatusCompleted && goal.Status == entity.GoalStatusCompleted {
		r.notifier.GoalCompleted(ctx, goal)
	}
	return goal, nil
}
