package dto

import (
	"time"

	"github.com/lifescope/backend/internal/domain/entity"
)

// dateLayout is the wire format of calendar dates.
const dateLayout = "2006-01-02"

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Category    string  `json:"category" binding:"required,max=50"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,goal_priority"`
	Deadline    *string `json:"deadline,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateGoalRequest represents the request body for goal update.
// An empty deadline string clears the deadline.
type UpdateGoalRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Category    *string `json:"category,omitempty" binding:"omitempty,max=50"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,goal_priority"`
	Deadline    *string `json:"deadline,omitempty" binding:"omitempty,datetime=2006-01-02|eq="`
}

// ListGoalsQuery holds the optional list filters.
type ListGoalsQuery struct {
	Status   string `form:"status" binding:"omitempty,goal_status"`
	Category string `form:"category" binding:"omitempty,max=50"`
}

// CreateActivityRequest represents the request body for adding an activity.
type CreateActivityRequest struct {
	Name      string  `json:"name" binding:"required,max=200"`
	Frequency string  `json:"frequency" binding:"required,activity_frequency"`
	Deadline  *string `json:"deadline,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateActivityRequest represents the request body for editing an activity.
// Completion fields are changed only through the toggle endpoint.
type UpdateActivityRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Frequency *string `json:"frequency,omitempty" binding:"omitempty,activity_frequency"`
	Deadline  *string `json:"deadline,omitempty" binding:"omitempty,datetime=2006-01-02|eq="`
}

// ActivityResponse represents a single activity in API responses.
type ActivityResponse struct {
	ID                   string     `json:"id"`
	GoalID               string     `json:"goal_id"`
	Name                 string     `json:"name"`
	Frequency            string     `json:"frequency"`
	IsCompleted          bool       `json:"is_completed"`
	LastCompletedAt      *time.Time `json:"last_completed_at"`
	IsCurrentlyCompleted bool       `json:"is_currently_completed"`
	IsOverdue            bool       `json:"is_overdue"`
	Deadline             *string    `json:"deadline,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Category       string             `json:"category"`
	Priority       string             `json:"priority"`
	Progress       int                `json:"progress"`
	Status         string             `json:"status"`
	Deadline       *string            `json:"deadline,omitempty"`
	CompletedCount int                `json:"completed_count"`
	Activities     []ActivityResponse `json:"activities"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ActivityMutationResponse is returned by add, edit and toggle: the touched
// activity plus the goal it now belongs to.
type ActivityMutationResponse struct {
	Activity ActivityResponse `json:"activity"`
	Goal     GoalResponse     `json:"goal"`
}

// ToActivityResponse converts an Activity entity. Completion is evaluated at now.
func ToActivityResponse(a *entity.Activity, now time.Time) ActivityResponse {
	return ActivityResponse{
		ID:                   a.ID.String(),
		GoalID:               a.GoalID.String(),
		Name:                 a.Name,
		Frequency:            string(a.Frequency),
		IsCompleted:          a.IsCompleted,
		LastCompletedAt:      a.LastCompletedAt,
		IsCurrentlyCompleted: a.IsCurrentlyCompleted(now),
		IsOverdue:            a.IsOverdue(now),
		Deadline:             formatDate(a.Deadline),
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// ToGoalResponse converts a Goal entity with its activities.
func ToGoalResponse(g *entity.Goal, now time.Time) GoalResponse {
	activities := make([]ActivityResponse, len(g.Activities))
	for i, a := range g.Activities {
		activities[i] = ToActivityResponse(a, now)
	}

	return GoalResponse{
		ID:             g.ID.String(),
		Title:          g.Title,
		Description:    g.Description,
		Category:       g.Category,
		Priority:       string(g.Priority),
		Progress:       g.Progress,
		Status:         string(g.Status),
		Deadline:       formatDate(g.Deadline),
		CompletedCount: g.CompletedCount(now),
		Activities:     activities,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goals.
func ToGoalListResponse(goals []*entity.Goal, now time.Time) GoalListResponse {
	list := make([]GoalResponse, len(goals))
	for i, g := range goals {
		list[i] = ToGoalResponse(g, now)
	}
	return GoalListResponse{Goals: list}
}

// ParseDate parses an optional YYYY-MM-DD value. Nil and "" yield nil.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
