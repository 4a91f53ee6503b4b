// Package persistence implements repository interfaces for database operations.
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

const goalPriorityOrder = "CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END"

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	return r.db.WithContext(ctx).Omit("Activities").Create(goalModel).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves the user's goals ordered by priority, then creation.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter adapter.GoalFilter) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var goalModels []model.GoalModel
	if err := query.Order(goalPriorityOrder).Order("created_at ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}

	return toGoalEntities(goalModels), nil
}

// FindAll retrieves every goal, optionally restricted to one user.
func (r *goalRepository) FindAll(ctx context.Context, userID *uuid.UUID) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var goalModels []model.GoalModel
	if err := query.Order("created_at ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}

	return toGoalEntities(goalModels), nil
}

// Update saves the editable goal fields. Progress and status are left untouched.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"title":       goal.Title,
			"description": goal.Description,
			"category":    goal.Category,
			"priority":    string(goal.Priority),
			"deadline":    goal.Deadline,
			"updated_at":  goal.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// UpdateProgress saves the derived aggregate of a goal.
func (r *goalRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int, status entity.GoalStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"progress":   progress,
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// Delete removes a goal and its activities.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&model.ActivityModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.GoalModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrGoalNotFound
		}
		return nil
	})
}

// CountByCategory counts a user's goals filed under category.
func (r *goalRepository) CountByCategory(ctx context.Context, userID uuid.UUID, category string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("user_id = ? AND category = ?", userID, category).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// RenameCategory refiles a user's goals from one category name to another.
func (r *goalRepository) RenameCategory(ctx context.Context, userID uuid.UUID, from, to string) error {
	return r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("user_id = ? AND category = ?", userID, from).
		Update("category", to).Error
}

func toGoalEntities(goalModels []model.GoalModel) []*entity.Goal {
	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals
}
