// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// GoalStatus is the coarse progress label of a goal. It is always derived from progress.
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "Not Started"
	GoalStatusInProgress GoalStatus = "In Progress"
	GoalStatusCompleted  GoalStatus = "Completed"
)

// IsValid reports whether s is a known status.
func (s GoalStatus) IsValid() bool {
	return s == GoalStatusNotStarted || s == GoalStatusInProgress || s == GoalStatusCompleted
}

// GoalPriority ranks goals for display.
type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "High"
	GoalPriorityMedium GoalPriority = "Medium"
	GoalPriorityLow    GoalPriority = "Low"
)

// IsValid reports whether p is a known priority.
func (p GoalPriority) IsValid() bool {
	return p == GoalPriorityHigh || p == GoalPriorityMedium || p == GoalPriorityLow
}

// Rank orders priorities from High (0) to Low (2).
func (p GoalPriority) Rank() int {
	switch p {
	case GoalPriorityHigh:
		return 0
	case GoalPriorityMedium:
		return 1
	default:
		return 2
	}
}

// Goal is a user objective that aggregates a list of activities.
// Progress and Status are caches of Aggregate over Activities.
type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Category    string
	Priority    GoalPriority
	Progress    int
	Status      GoalStatus
	Deadline    *time.Time
	Activities  []*Activity // Creation order
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGoal creates a new Goal with no activities.
func NewGoal(userID uuid.UUID, title, description, category string, priority GoalPriority, deadline *time.Time, now time.Time) *Goal {
	now = now.UTC()

	return &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Progress:    0,
		Status:      GoalStatusNotStarted,
		Deadline:    deadline,
		Activities:  []*Activity{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Aggregate computes progress and status for activities at now.
// Progress is round(100 * completed / total) with halves rounded away from zero.
func Aggregate(activities []*Activity, now time.Time) (int, GoalStatus) {
	if len(activities) == 0 {
		return 0, GoalStatusNotStarted
	}

	completed := 0
	for _, a := range activities {
		if a.IsCurrentlyCompleted(now) {
			completed++
		}
	}

	progress := int(math.Round(100 * float64(completed) / float64(len(activities))))
	return progress, StatusForProgress(progress)
}

// StatusForProgress derives the status label from a progress percentage.
func StatusForProgress(progress int) GoalStatus {
	switch {
	case progress >= 100:
		return GoalStatusCompleted
	case progress <= 0:
		return GoalStatusNotStarted
	default:
		return GoalStatusInProgress
	}
}

// Recompute refreshes Progress and Status from the goal's activities and
// reports whether either cached value changed.
func (g *Goal) Recompute(now time.Time) bool {
	progress, status := Aggregate(g.Activities, now)
	changed := progress != g.Progress || status != g.Status
	g.Progress = progress
	g.Status = status
	return changed
}

// FindActivity returns the goal's activity with the given id.
func (g *Goal) FindActivity(id uuid.UUID) (*Activity, bool) {
	for _, a := range g.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// CompletedCount returns how many activities are satisfied at now.
func (g *Goal) CompletedCount(now time.Time) int {
	n := 0
	for _, a := range g.Activities {
		if a.IsCurrentlyCompleted(now) {
			n++
		}
	}
	return n
}
