package activity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/domain/valueobject"
)

var now = time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx        context.Context
	userID     uuid.UUID
	goal       *entity.Goal
	goals      *fakeGoalRepo
	activities *fakeActivityRepo
	metrics    *countingMetrics

	add    *AddActivityUseCase
	toggle *ToggleActivityUseCase
	remove *RemoveActivityUseCase
	update *UpdateActivityUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:        context.Background(),
		userID:     uuid.New(),
		goals:      newFakeGoalRepo(),
		activities: newFakeActivityRepo(),
		metrics:    &countingMetrics{},
	}
	f.goal = entity.NewGoal(f.userID, "Get fit", "", "Health", entity.GoalPriorityHigh, nil, now)
	require.NoError(t, f.goals.Create(f.ctx, f.goal))

	recalc := goal.NewProgressRecalculator(f.goals, f.activities, fixedClock{now}, f.metrics)
	f.add = NewAddActivityUseCase(f.goals, f.activities, recalc)
	f.toggle = NewToggleActivityUseCase(f.goals, f.activities, recalc, f.metrics)
	f.remove = NewRemoveActivityUseCase(f.goals, f.activities, recalc)
	f.update = NewUpdateActivityUseCase(f.goals, f.activities, fixedClock{now})
	return f
}

// seed stores an activity directly, bypassing the use cases.
func (f *fixture) seed(t *testing.T, name string, frequency valueobject.Frequency, completed bool) *entity.Activity {
	t.Helper()
	a := entity.NewActivity(f.goal.ID, name, frequency, nil, now)
	a.CreatedAt = now.Add(time.Duration(len(f.activities.activities)) * time.Second)
	if completed {
		stamp := now.Add(-time.Hour)
		a.IsCompleted = true
		a.LastCompletedAt = &stamp
	}
	f.activities.activities[a.ID] = a
	f.activities.writes = 0
	return a
}

// sync recomputes the stored goal aggregate from the seeded activities.
func (f *fixture) sync(t *testing.T) {
	t.Helper()
	list, err := f.activities.FindByGoalID(f.ctx, f.goal.ID)
	require.NoError(t, err)
	progress, status := entity.Aggregate(list, now)
	f.goals.goals[f.goal.ID].Progress = progress
	f.goals.goals[f.goal.ID].Status = status
}

func (f *fixture) stored() *entity.Goal {
	return f.goals.goals[f.goal.ID]
}

func TestToggleActivity(t *testing.T) {
	t.Run("completing the only activity completes the goal", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)

		out, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})
		require.NoError(t, err)

		assert.True(t, out.Completed)
		assert.Equal(t, 100, out.Goal.Progress)
		assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Status)
		assert.Equal(t, 100, f.stored().Progress)
		require.NotNil(t, f.activities.activities[a.ID].LastCompletedAt)
		assert.True(t, f.activities.activities[a.ID].LastCompletedAt.Equal(now))
		assert.Equal(t, 1, f.metrics.toggles["completed"])
	})

	t.Run("clearing the only activity returns to not started", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, true)
		f.sync(t)
		require.Equal(t, entity.GoalStatusCompleted, f.stored().Status)

		out, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})
		require.NoError(t, err)

		assert.False(t, out.Completed)
		assert.Equal(t, 0, out.Goal.Progress)
		assert.Equal(t, entity.GoalStatusNotStarted, out.Goal.Status)
		assert.Nil(t, f.activities.activities[a.ID].LastCompletedAt)
		assert.Equal(t, 1, f.metrics.toggles["cleared"])
	})

	t.Run("clearing one of several drops completed goal to in progress", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, true)
		f.seed(t, "Stretch", valueobject.FrequencyWeekly, true)
		f.seed(t, "Sign up for race", valueobject.FrequencyOnce, true)
		f.sync(t)
		require.Equal(t, 100, f.stored().Progress)

		out, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})
		require.NoError(t, err)

		assert.Equal(t, 67, out.Goal.Progress)
		assert.Equal(t, entity.GoalStatusInProgress, out.Goal.Status)
		assert.Len(t, out.Goal.Activities, 3)
	})

	t.Run("activity of another goal is not found", func(t *testing.T) {
		f := newFixture(t)
		stray := entity.NewActivity(uuid.New(), "Elsewhere", valueobject.FrequencyDaily, nil, now)
		f.activities.activities[stray.ID] = stray

		_, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: stray.ID, UserID: f.userID})

		var actErr *domainerror.ActivityError
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, domainerror.ErrCodeActivityNotFound, actErr.Code)
		assert.Zero(t, f.activities.writes)
	})

	t.Run("goal of another user is rejected", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)

		_, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: uuid.New()})

		var goalErr *domainerror.GoalError
		require.ErrorAs(t, err, &goalErr)
		assert.Equal(t, domainerror.ErrCodeUnauthorizedGoalAccess, goalErr.Code)
		assert.Zero(t, f.activities.writes)
	})

	t.Run("activity write failure aborts before recompute", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)
		f.activities.writeErr = errors.New("connection reset")

		_, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})

		var actErr *domainerror.ActivityError
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, domainerror.ErrCodeActivityWriteFailed, actErr.Code)
		assert.ErrorIs(t, err, domainerror.ErrActivityWriteFailed)
		assert.Zero(t, f.goals.progressWrites)
		assert.Equal(t, entity.GoalStatusNotStarted, f.stored().Status)
		assert.Equal(t, 1, f.metrics.toggles["failed"])
	})

	t.Run("aggregate write failure is reported as stale", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)
		f.goals.updateProgressErr = errors.New("deadlock detected")

		_, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})

		var goalErr *domainerror.GoalError
		require.ErrorAs(t, err, &goalErr)
		assert.Equal(t, domainerror.ErrCodeGoalAggregateStale, goalErr.Code)
		assert.True(t, goalErr.IsStale())
		assert.ErrorIs(t, err, domainerror.ErrGoalAggregateStale)

		// The activity change committed even though the aggregate did not.
		assert.True(t, f.activities.activities[a.ID].IsCompleted)
		assert.Equal(t, 0, f.stored().Progress)
		assert.Equal(t, 1, f.metrics.stale)
	})

	t.Run("activity reload failure is reported as stale", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)
		f.activities.listErr = errors.New("timeout")

		_, err := f.toggle.Execute(f.ctx, ToggleActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})

		var goalErr *domainerror.GoalError
		require.ErrorAs(t, err, &goalErr)
		assert.Equal(t, domainerror.ErrCodeGoalActivitiesUnavailable, goalErr.Code)
		assert.True(t, goalErr.IsStale())
		assert.Zero(t, f.goals.progressWrites)
	})
}

func TestAddActivity(t *testing.T) {
	t.Run("incomplete activity drops a completed goal", func(t *testing.T) {
		for n := 1; n <= 4; n++ {
			f := newFixture(t)
			for i := 0; i < n; i++ {
				f.seed(t, "done", valueobject.FrequencyMonthly, true)
			}
			f.sync(t)
			require.Equal(t, entity.GoalStatusCompleted, f.stored().Status)

			out, err := f.add.Execute(f.ctx, AddActivityInput{
				GoalID: f.goal.ID, UserID: f.userID, Name: "new", Frequency: "Weekly",
			})
			require.NoError(t, err)

			want, _ := entity.Aggregate(out.Goal.Activities, now)
			assert.Equal(t, want, out.Goal.Progress)
			assert.Equal(t, entity.GoalStatusInProgress, out.Goal.Status)
			assert.Len(t, out.Goal.Activities, n+1)
			assert.Equal(t, "new", out.Goal.Activities[n].Name)
		}
	})

	t.Run("first activity keeps goal not started", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.add.Execute(f.ctx, AddActivityInput{
			GoalID: f.goal.ID, UserID: f.userID, Name: "  Meditate  ", Frequency: "daily",
		})
		require.NoError(t, err)

		assert.Equal(t, "Meditate", out.Activity.Name)
		assert.Equal(t, valueobject.FrequencyDaily, out.Activity.Frequency)
		assert.True(t, out.Activity.CreatedAt.Equal(now))
		assert.False(t, out.Activity.IsCompleted)
		assert.Equal(t, entity.GoalStatusNotStarted, out.Goal.Status)
		assert.Equal(t, 1, f.goals.progressWrites)
	})

	t.Run("deadline is kept only for once activities", func(t *testing.T) {
		f := newFixture(t)
		deadline := time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)

		once, err := f.add.Execute(f.ctx, AddActivityInput{
			GoalID: f.goal.ID, UserID: f.userID, Name: "Book race", Frequency: "Once", Deadline: &deadline,
		})
		require.NoError(t, err)
		require.NotNil(t, once.Activity.Deadline)
		assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *once.Activity.Deadline)

		daily, err := f.add.Execute(f.ctx, AddActivityInput{
			GoalID: f.goal.ID, UserID: f.userID, Name: "Run", Frequency: "Daily", Deadline: &deadline,
		})
		require.NoError(t, err)
		assert.Nil(t, daily.Activity.Deadline)
	})

	t.Run("invalid input is rejected before any write", func(t *testing.T) {
		tests := []struct {
			name     string
			input    AddActivityInput
			code     domainerror.ActivityErrorCode
			sentinel error
		}{
			{"missing name", AddActivityInput{Name: "   ", Frequency: "Daily"}, domainerror.ErrCodeActivityNameRequired, domainerror.ErrActivityNameRequired},
			{"unknown frequency", AddActivityInput{Name: "Run", Frequency: "Hourly"}, domainerror.ErrCodeInvalidFrequency, domainerror.ErrInvalidFrequency},
			{"empty frequency", AddActivityInput{Name: "Run"}, domainerror.ErrCodeInvalidFrequency, domainerror.ErrInvalidFrequency},
			{"name over the limit", AddActivityInput{Name: strings.Repeat("ж", MaxActivityNameLength+1), Frequency: "Daily"}, domainerror.ErrCodeActivityNameTooLong, domainerror.ErrActivityNameTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				tt.input.GoalID = f.goal.ID
				tt.input.UserID = f.userID

				_, err := f.add.Execute(f.ctx, tt.input)

				var actErr *domainerror.ActivityError
				require.ErrorAs(t, err, &actErr)
				assert.Equal(t, tt.code, actErr.Code)
				assert.ErrorIs(t, err, tt.sentinel)
				assert.Zero(t, f.activities.writes)
				assert.Zero(t, f.goals.progressWrites)
			})
		}
	})

	t.Run("name length counts characters", func(t *testing.T) {
		f := newFixture(t)
		name := strings.Repeat("ж", MaxActivityNameLength)

		out, err := f.add.Execute(f.ctx, AddActivityInput{GoalID: f.goal.ID, UserID: f.userID, Name: name, Frequency: "Weekly"})
		require.NoError(t, err)
		assert.Equal(t, name, out.Activity.Name)
	})

	t.Run("insert failure leaves goal untouched", func(t *testing.T) {
		f := newFixture(t)
		f.activities.writeErr = errors.New("unique violation")

		_, err := f.add.Execute(f.ctx, AddActivityInput{GoalID: f.goal.ID, UserID: f.userID, Name: "Run", Frequency: "Daily"})

		var actErr *domainerror.ActivityError
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, domainerror.ErrCodeActivityWriteFailed, actErr.Code)
		assert.Zero(t, f.goals.progressWrites)
		assert.Empty(t, f.activities.activities)
	})

	t.Run("unknown goal", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.add.Execute(f.ctx, AddActivityInput{GoalID: uuid.New(), UserID: f.userID, Name: "Run", Frequency: "Daily"})

		var goalErr *domainerror.GoalError
		require.ErrorAs(t, err, &goalErr)
		assert.Equal(t, domainerror.ErrCodeGoalNotFound, goalErr.Code)
	})
}

func TestRemoveActivity(t *testing.T) {
	t.Run("removing the last incomplete activity completes the goal", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, "Run", valueobject.FrequencyDaily, true)
		f.seed(t, "Swim", valueobject.FrequencyWeekly, true)
		pending := f.seed(t, "Cycle", valueobject.FrequencyMonthly, false)
		f.sync(t)
		require.Equal(t, 67, f.stored().Progress)

		out, err := f.remove.Execute(f.ctx, RemoveActivityInput{GoalID: f.goal.ID, ActivityID: pending.ID, UserID: f.userID})
		require.NoError(t, err)

		assert.Equal(t, 100, out.Goal.Progress)
		assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Status)
		assert.Len(t, out.Goal.Activities, 2)
		assert.Equal(t, entity.GoalStatusCompleted, f.stored().Status)
	})

	t.Run("removing the only activity resets to not started", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, true)
		f.sync(t)

		out, err := f.remove.Execute(f.ctx, RemoveActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})
		require.NoError(t, err)

		assert.Equal(t, 0, out.Goal.Progress)
		assert.Equal(t, entity.GoalStatusNotStarted, out.Goal.Status)
		assert.Empty(t, out.Goal.Activities)
	})

	t.Run("delete failure keeps the activity", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)
		f.activities.writeErr = errors.New("read-only transaction")

		_, err := f.remove.Execute(f.ctx, RemoveActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID})

		var actErr *domainerror.ActivityError
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, domainerror.ErrCodeActivityWriteFailed, actErr.Code)
		assert.Contains(t, f.activities.activities, a.ID)
		assert.Zero(t, f.goals.progressWrites)
	})
}

func TestUpdateActivity(t *testing.T) {
	t.Run("frequency change does not recompute", func(t *testing.T) {
		f := newFixture(t)
		// Completed yesterday: satisfied weekly, not daily.
		a := f.seed(t, "Run", valueobject.FrequencyWeekly, false)
		yesterday := now.AddDate(0, 0, -1)
		a.IsCompleted = true
		a.LastCompletedAt = &yesterday
		f.sync(t)
		require.Equal(t, 100, f.stored().Progress)

		freq := "Daily"
		out, err := f.update.Execute(f.ctx, UpdateActivityInput{
			GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID, Frequency: &freq,
		})
		require.NoError(t, err)

		assert.Equal(t, valueobject.FrequencyDaily, out.Activity.Frequency)
		assert.Equal(t, 100, f.stored().Progress)
		assert.Zero(t, f.goals.progressWrites)

		// The next evaluation applies the new frequency to the old timestamp.
		assert.False(t, out.Activity.IsCurrentlyCompleted(now))
		assert.Equal(t, yesterday, *f.activities.activities[a.ID].LastCompletedAt)
	})

	t.Run("rename", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)

		name := " Run 5k "
		out, err := f.update.Execute(f.ctx, UpdateActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Run 5k", out.Activity.Name)
		assert.Equal(t, "Run 5k", out.Goal.Activities[0].Name)
		assert.True(t, out.Activity.UpdatedAt.Equal(now))
	})

	t.Run("reload failure after the edit is stale", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)
		f.activities.listErr = errors.New("timeout")

		name := "Run 5k"
		_, err := f.update.Execute(f.ctx, UpdateActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID, Name: &name})

		var goalErr *domainerror.GoalError
		require.ErrorAs(t, err, &goalErr)
		assert.Equal(t, domainerror.ErrCodeGoalActivitiesUnavailable, goalErr.Code)
		assert.True(t, goalErr.IsStale())
		assert.Equal(t, "Run 5k", f.activities.activities[a.ID].Name, "the edit is kept")
	})

	t.Run("invalid frequency is rejected before any write", func(t *testing.T) {
		f := newFixture(t)
		a := f.seed(t, "Run", valueobject.FrequencyDaily, false)

		freq := "Fortnightly"
		_, err := f.update.Execute(f.ctx, UpdateActivityInput{GoalID: f.goal.ID, ActivityID: a.ID, UserID: f.userID, Frequency: &freq})

		assert.ErrorIs(t, err, domainerror.ErrInvalidFrequency)
		assert.Zero(t, f.activities.writes)
		assert.Equal(t, valueobject.FrequencyDaily, f.activities.activities[a.ID].Frequency)
	})
}
