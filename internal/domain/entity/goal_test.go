package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/valueobject"
)

var testNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func activity(frequency valueobject.Frequency, done bool) *Activity {
	a := NewActivity(uuid.New(), "test", frequency, nil, testNow)
	if done {
		stamp := testNow.Add(-time.Hour)
		a.IsCompleted = true
		a.LastCompletedAt = &stamp
	}
	return a
}

func activities(total, completed int) []*Activity {
	list := make([]*Activity, 0, total)
	for i := 0; i < total; i++ {
		list = append(list, activity(valueobject.FrequencyDaily, i < completed))
	}
	return list
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		progress  int
		status    GoalStatus
	}{
		{"no activities", 0, 0, 0, GoalStatusNotStarted},
		{"none completed", 4, 0, 0, GoalStatusNotStarted},
		{"one of three rounds down", 3, 1, 33, GoalStatusInProgress},
		{"two of three rounds up", 3, 2, 67, GoalStatusInProgress},
		{"one of two", 2, 1, 50, GoalStatusInProgress},
		{"one of eight rounds half away from zero", 8, 1, 13, GoalStatusInProgress},
		{"three of eight rounds half away from zero", 8, 3, 38, GoalStatusInProgress},
		{"all of three", 3, 3, 100, GoalStatusCompleted},
		{"199 of 200 rounds up to completed", 200, 199, 100, GoalStatusCompleted},
		{"one of 201 rounds to zero", 201, 1, 0, GoalStatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, status := Aggregate(activities(tt.total, tt.completed), testNow)
			if progress != tt.progress {
				t.Errorf("progress = %d, want %d", progress, tt.progress)
			}
			if status != tt.status {
				t.Errorf("status = %q, want %q", status, tt.status)
			}
		})
	}
}

func TestAggregate_UsesEvaluator(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)

	daily := activity(valueobject.FrequencyDaily, false)
	daily.IsCompleted = true
	daily.LastCompletedAt = &yesterday

	weekly := activity(valueobject.FrequencyWeekly, false)
	weekly.IsCompleted = true
	weekly.LastCompletedAt = &yesterday

	legacy := activity(valueobject.FrequencyDaily, false)
	legacy.IsCompleted = true

	progress, status := Aggregate([]*Activity{daily, weekly, legacy}, testNow)
	if progress != 67 || status != GoalStatusInProgress {
		t.Errorf("Aggregate() = (%d, %q), want (67, In Progress)", progress, status)
	}
}

func TestGoalRecompute(t *testing.T) {
	t.Run("overwrites explicitly set status", func(t *testing.T) {
		g := NewGoal(uuid.New(), "Run", "", "Health", GoalPriorityMedium, nil, testNow)
		g.Status = GoalStatusCompleted
		g.Progress = 100

		if changed := g.Recompute(testNow); !changed {
			t.Error("expected recompute to report a change")
		}
		if g.Progress != 0 || g.Status != GoalStatusNotStarted {
			t.Errorf("got (%d, %q), want (0, Not Started)", g.Progress, g.Status)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		g := NewGoal(uuid.New(), "Read", "", "Education", GoalPriorityLow, nil, testNow)
		g.Activities = activities(3, 1)

		g.Recompute(testNow)
		first, firstStatus := g.Progress, g.Status

		if changed := g.Recompute(testNow); changed {
			t.Error("second recompute should not change anything")
		}
		if g.Progress != first || g.Status != firstStatus {
			t.Errorf("second recompute gave (%d, %q), want (%d, %q)", g.Progress, g.Status, first, firstStatus)
		}
	})

	t.Run("adding incomplete activity to complete goal", func(t *testing.T) {
		for n := 1; n <= 5; n++ {
			g := NewGoal(uuid.New(), "Save", "", "Finance", GoalPriorityHigh, nil, testNow)
			g.Activities = activities(n, n)
			g.Recompute(testNow)
			if g.Status != GoalStatusCompleted {
				t.Fatalf("n=%d: expected Completed before add", n)
			}

			g.Activities = append(g.Activities, activity(valueobject.FrequencyOnce, false))
			g.Recompute(testNow)

			want := int(float64(100*n)/float64(n+1) + 0.5)
			if g.Progress != want || g.Status != GoalStatusInProgress {
				t.Errorf("n=%d: got (%d, %q), want (%d, In Progress)", n, g.Progress, g.Status, want)
			}
		}
	})
}

func TestStatusForProgress(t *testing.T) {
	tests := map[int]GoalStatus{
		0:   GoalStatusNotStarted,
		1:   GoalStatusInProgress,
		99:  GoalStatusInProgress,
		100: GoalStatusCompleted,
	}
	for progress, want := range tests {
		if got := StatusForProgress(progress); got != want {
			t.Errorf("StatusForProgress(%d) = %q, want %q", progress, got, want)
		}
	}
}

func TestActivityToggled(t *testing.T) {
	t.Run("pending activity is stamped", func(t *testing.T) {
		a := activity(valueobject.FrequencyWeekly, false)
		rec := a.Toggled(testNow)
		if !rec.IsCompleted || rec.LastCompletedAt == nil || !rec.LastCompletedAt.Equal(testNow) {
			t.Errorf("unexpected record %+v", rec)
		}
	})

	t.Run("completed activity is cleared", func(t *testing.T) {
		a := activity(valueobject.FrequencyWeekly, true)
		rec := a.Toggled(testNow)
		if rec.IsCompleted || rec.LastCompletedAt != nil {
			t.Errorf("unexpected record %+v", rec)
		}
	})

	t.Run("rolled over activity is completed again", func(t *testing.T) {
		a := activity(valueobject.FrequencyDaily, false)
		lastWeek := testNow.AddDate(0, 0, -7)
		a.IsCompleted = true
		a.LastCompletedAt = &lastWeek

		rec := a.Toggled(testNow)
		if !rec.IsCompleted || !rec.LastCompletedAt.Equal(testNow) {
			t.Errorf("unexpected record %+v", rec)
		}
	})

	t.Run("legacy completed flag is cleared", func(t *testing.T) {
		a := activity(valueobject.FrequencyOnce, false)
		a.IsCompleted = true
		rec := a.Toggled(testNow)
		if rec.IsCompleted {
			t.Error("expected legacy completion to be cleared")
		}
	})
}

func TestActivityIsOverdue(t *testing.T) {
	past := testNow.AddDate(0, 0, -1)
	a := NewActivity(uuid.New(), "File taxes", valueobject.FrequencyOnce, &past, testNow)
	if !a.IsOverdue(testNow) {
		t.Error("expected pending Once activity past deadline to be overdue")
	}

	a.IsCompleted = true
	if a.IsOverdue(testNow) {
		t.Error("completed activity should not be overdue")
	}

	d := NewActivity(uuid.New(), "Walk", valueobject.FrequencyDaily, &past, testNow)
	if d.IsOverdue(testNow) {
		t.Error("deadline is ignored for recurring activities")
	}
}

func TestActivityApplyCompletion(t *testing.T) {
	a := NewActivity(uuid.New(), "Stretch", valueobject.FrequencyDaily, nil, testNow.Add(-48*time.Hour))
	later := testNow.In(time.FixedZone("UTC+2", 2*60*60))

	a.ApplyCompletion(a.Toggled(later), later)

	if !a.IsCompleted || a.LastCompletedAt == nil {
		t.Fatalf("activity not completed: %+v", a)
	}
	if !a.UpdatedAt.Equal(testNow) || a.UpdatedAt.Location() != time.UTC {
		t.Errorf("UpdatedAt = %v, want %v in UTC", a.UpdatedAt, testNow)
	}
	if !a.CreatedAt.Equal(testNow.Add(-48 * time.Hour)) {
		t.Errorf("CreatedAt = %v, want the constructor's now", a.CreatedAt)
	}
}
