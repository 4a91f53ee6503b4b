package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

// activityRepository implements the adapter.ActivityRepository interface.
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository instance.
func NewActivityRepository(db *gorm.DB) adapter.ActivityRepository {
	return &activityRepository{
		db: db,
	}
}

// Create inserts a new activity for its goal.
func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(model.ActivityFromEntity(activity)).Error
}

// FindByID retrieves an activity by its ID.
func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activityModel model.ActivityModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&activityModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrActivityNotFound
		}
		return nil, result.Error
	}
	return activityModel.ToEntity(), nil
}

// FindByGoalID retrieves a goal's activities in creation order.
func (r *activityRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Activity, error) {
	var activityModels []model.ActivityModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&activityModels)
	if result.Error != nil {
		return nil, result.Error
	}

	activities := make([]*entity.Activity, len(activityModels))
	for i := range activityModels {
		activities[i] = activityModels[i].ToEntity()
	}
	return activities, nil
}

// FindByGoalIDs retrieves activities for several goals keyed by goal ID.
func (r *activityRepository) FindByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Activity, error) {
	byGoal := make(map[uuid.UUID][]*entity.Activity, len(goalIDs))
	if len(goalIDs) == 0 {
		return byGoal, nil
	}

	var activityModels []model.ActivityModel
	result := r.db.WithContext(ctx).
		Where("goal_id IN ?", goalIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&activityModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range activityModels {
		a := activityModels[i].ToEntity()
		byGoal[a.GoalID] = append(byGoal[a.GoalID], a)
	}
	return byGoal, nil
}

// Update saves the editable activity fields. Completion fields are left untouched.
func (r *activityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	result := r.db.WithContext(ctx).
		Model(&model.ActivityModel{}).
		Where("id = ?", activity.ID).
		Updates(map[string]interface{}{
			"name":       activity.Name,
			"frequency":  string(activity.Frequency),
			"deadline":   activity.Deadline,
			"updated_at": activity.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrActivityNotFound
	}
	return nil
}

// UpdateCompletion saves the completion record of an activity.
func (r *activityRepository) UpdateCompletion(ctx context.Context, id uuid.UUID, isCompleted bool, lastCompletedAt *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.ActivityModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_completed":      isCompleted,
			"last_completed_at": lastCompletedAt,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrActivityNotFound
	}
	return nil
}

// Delete removes an activity.
func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ActivityModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrActivityNotFound
	}
	return nil
}
