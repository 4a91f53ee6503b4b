package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/valueobject"
)

// Activity is a recurring or one-off task owned by a Goal.
type Activity struct {
	ID              uuid.UUID
	GoalID          uuid.UUID
	Name            string
	Frequency       valueobject.Frequency
	IsCompleted     bool
	LastCompletedAt *time.Time
	Deadline        *time.Time // Meaningful only for Once
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewActivity creates a new, incomplete Activity created at now.
func NewActivity(goalID uuid.UUID, name string, frequency valueobject.Frequency, deadline *time.Time, now time.Time) *Activity {
	now = now.UTC()

	return &Activity{
		ID:        uuid.New(),
		GoalID:    goalID,
		Name:      name,
		Frequency: frequency,
		Deadline:  deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Completion returns the activity's completion record.
func (a *Activity) Completion() valueobject.CompletionRecord {
	return valueobject.CompletionRecord{
		IsCompleted:     a.IsCompleted,
		LastCompletedAt: a.LastCompletedAt,
	}
}

// IsCurrentlyCompleted reports whether the activity is satisfied for the period containing now.
func (a *Activity) IsCurrentlyCompleted(now time.Time) bool {
	return a.Completion().IsCurrentlyCompleted(a.Frequency, now)
}

// Toggled returns the completion record that toggling the activity at now would persist.
// A currently satisfied activity is cleared; otherwise it is stamped with now.
func (a *Activity) Toggled(now time.Time) valueobject.CompletionRecord {
	if a.IsCurrentlyCompleted(now) {
		return valueobject.CompletionRecord{IsCompleted: false}
	}
	stamp := now.UTC()
	return valueobject.CompletionRecord{IsCompleted: true, LastCompletedAt: &stamp}
}

// ApplyCompletion copies record onto the activity.
func (a *Activity) ApplyCompletion(record valueobject.CompletionRecord, now time.Time) {
	a.IsCompleted = record.IsCompleted
	a.LastCompletedAt = record.LastCompletedAt
	a.UpdatedAt = now.UTC()
}

// IsOverdue reports whether a pending Once activity is past its deadline.
func (a *Activity) IsOverdue(now time.Time) bool {
	if a.Frequency != valueobject.FrequencyOnce || a.Deadline == nil {
		return false
	}
	return !a.IsCurrentlyCompleted(now) && now.After(*a.Deadline)
}
