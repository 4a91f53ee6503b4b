package adapter

import (
	"context"

	"github.com/lifescope/backend/internal/domain/entity"
)

// MetricsRecorder receives domain events worth counting.
type MetricsRecorder interface {
	// ActivityToggled records a toggle outcome: "completed", "cleared" or "failed".
	ActivityToggled(result string)

	// GoalRecomputed records a persisted recompute and the resulting status.
	GoalRecomputed(status entity.GoalStatus)

	// GoalAggregateStale records an aggregate that failed to persist.
	GoalAggregateStale()
}

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) ActivityToggled(string)           {}
func (NopMetrics) GoalRecomputed(entity.GoalStatus) {}
func (NopMetrics) GoalAggregateStale()              {}

// GoalNotifier is told when a goal transitions into Completed.
// Implementations must not block and must swallow their own errors.
type GoalNotifier interface {
	GoalCompleted(ctx context.Context, goal *entity.Goal)
}
