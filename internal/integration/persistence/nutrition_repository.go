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

// nutritionRepository implements the adapter.NutritionRepository interface.
type nutritionRepository struct {
	db *gorm.DB
}

// NewNutritionRepository creates a new nutrition repository instance.
func NewNutritionRepository(db *gorm.DB) adapter.NutritionRepository {
	return &nutritionRepository{
		db: db,
	}
}

// Create stores a new entry.
func (r *nutritionRepository) Create(ctx context.Context, entry *entity.NutritionEntry) error {
	return r.db.WithContext(ctx).Create(model.NutritionEntryFromEntity(entry)).Error
}

// FindByID retrieves an entry by its ID.
func (r *nutritionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.NutritionEntry, error) {
	var entryModel model.NutritionEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNutritionEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByUserAndRange retrieves a user's entries consumed in [from, to), oldest first.
func (r *nutritionRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.NutritionEntry, error) {
	var entryModels []model.NutritionEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, from.UTC(), to.UTC()).
		Order("consumed_at ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.NutritionEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToEntity()
	}
	return entries, nil
}

// Delete removes an entry.
func (r *nutritionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.NutritionEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrNutritionEntryNotFound
	}
	return nil
}
