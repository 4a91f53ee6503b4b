// Package adapter holds the ports the use cases depend on. Implementations live under internal/integration.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// GoalFilter narrows a goal listing.
type GoalFilter struct {
	Status   *entity.GoalStatus
	Category *string
}

// GoalRepository defines the interface for goal persistence operations.
// Returned goals do not carry activities; callers load them through ActivityRepository.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves the user's goals ordered by priority, then creation.
	FindByUserID(ctx context.Context, userID uuid.UUID, filter GoalFilter) ([]*entity.Goal, error)

	// FindAll retrieves every goal, optionally restricted to one user.
	FindAll(ctx context.Context, userID *uuid.UUID) ([]*entity.Goal, error)

	// Update saves the editable goal fields. Progress and status are left untouched.
	Update(ctx context.Context, goal *entity.Goal) error

	// UpdateProgress saves the derived aggregate of a goal.
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int, status entity.GoalStatus) error

	// Delete removes a goal and its activities.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCategory counts a user's goals filed under category.
	CountByCategory(ctx context.Context, userID uuid.UUID, category string) (int64, error)

	// RenameCategory refiles a user's goals from one category name to another.
	RenameCategory(ctx context.Context, userID uuid.UUID, from, to string) error
}

// ActivityRepository defines the interface for activity persistence operations.
type ActivityRepository interface {
	// Create inserts a new activity for its goal.
	Create(ctx context.Context, activity *entity.Activity) error

	// FindByID retrieves an activity by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)

	// FindByGoalID retrieves a goal's activities in creation order.
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Activity, error)

	// FindByGoalIDs retrieves activities for several goals keyed by goal ID.
	FindByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Activity, error)

	// Update saves the editable activity fields. Completion fields are left untouched.
	Update(ctx context.Context, activity *entity.Activity) error

	// UpdateCompletion saves the completion record of an activity.
	UpdateCompletion(ctx context.Context, id uuid.UUID, isCompleted bool, lastCompletedAt *time.Time) error

	// Delete removes an activity.
	Delete(ctx context.Context, id uuid.UUID) error
}
