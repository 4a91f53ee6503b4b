package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create relies on the (user_id, name_key) index, so two concurrent creates
// of the same name cannot both succeed.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return categoryWriteError(r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error)
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *categoryRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	return r.findOne(ctx, "user_id = ? AND name_key = ?", userID, model.CategoryNameKey(name))
}

func (r *categoryRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var row model.CategoryModel
	err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *categoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var rows []model.CategoryModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name_key").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]*entity.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToEntity()
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return categoryWriteError(r.db.WithContext(ctx).Save(model.CategoryFromEntity(category)).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id).Error
}

// CountGoalsByCategory maps each category label the user's goals carry to
// the number of goals filed under it.
func (r *categoryRepository) CountGoalsByCategory(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

func categoryWriteError(err error) error {
	if isUniqueViolation(err) {
		return domainerror.ErrCategoryNameExists
	}
	return err
}
