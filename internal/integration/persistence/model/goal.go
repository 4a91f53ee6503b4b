// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/domain/valueobject"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Priority    string          `gorm:"type:varchar(10);not null;default:'Medium'"`
	Progress    int             `gorm:"not null;default:0"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Not Started'"`
	Deadline    *time.Time      `gorm:"type:date"`
	Activities  []ActivityModel `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
// Activities are converted only when they were preloaded.
func (m *GoalModel) ToEntity() *entity.Goal {
	activities := make([]*entity.Activity, len(m.Activities))
	for i := range m.Activities {
		activities[i] = m.Activities[i].ToEntity()
	}

	return &entity.Goal{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Priority:    entity.GoalPriority(m.Priority),
		Progress:    m.Progress,
		Status:      entity.GoalStatus(m.Status),
		Deadline:    m.Deadline,
		Activities:  activities,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity. Activities are not copied.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:          goal.ID,
		UserID:      goal.UserID,
		Title:       goal.Title,
		Description: goal.Description,
		Category:    goal.Category,
		Priority:    string(goal.Priority),
		Progress:    goal.Progress,
		Status:      string(goal.Status),
		Deadline:    goal.Deadline,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

// ActivityModel represents the goal_activities table in the database.
type ActivityModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GoalID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name            string     `gorm:"type:varchar(200);not null"`
	Frequency       string     `gorm:"type:varchar(10);not null;default:'Once'"`
	IsCompleted     bool       `gorm:"not null;default:false"`
	LastCompletedAt *time.Time `gorm:"type:timestamp"`
	Deadline        *time.Time `gorm:"type:date"`
	CreatedAt       time.Time  `gorm:"not null;index"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ActivityModel.
func (ActivityModel) TableName() string {
	return "goal_activities"
}

// ToEntity converts an ActivityModel to a domain Activity entity.
func (m *ActivityModel) ToEntity() *entity.Activity {
	return &entity.Activity{
		ID:              m.ID,
		GoalID:          m.GoalID,
		Name:            m.Name,
		Frequency:       valueobject.Frequency(m.Frequency),
		IsCompleted:     m.IsCompleted,
		LastCompletedAt: m.LastCompletedAt,
		Deadline:        m.Deadline,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ActivityFromEntity creates an ActivityModel from a domain Activity entity.
func ActivityFromEntity(activity *entity.Activity) *ActivityModel {
	return &ActivityModel{
		ID:              activity.ID,
		GoalID:          activity.GoalID,
		Name:            activity.Name,
		Frequency:       string(activity.Frequency),
		IsCompleted:     activity.IsCompleted,
		LastCompletedAt: activity.LastCompletedAt,
		Deadline:        activity.Deadline,
		CreatedAt:       activity.CreatedAt,
		UpdatedAt:       activity.UpdatedAt,
	}
}
