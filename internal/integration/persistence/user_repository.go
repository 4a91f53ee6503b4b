package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts a user. A taken email yields domainerror.ErrEmailAlreadyExists.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
	if isUniqueViolation(err) {
		return domainerror.ErrEmailAlreadyExists
	}
	return err
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a user by address, ignoring case.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&userModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return userModel.ToEntity(), nil
}

// Update saves the profile fields of a user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Save(model.UserFromEntity(user))
	if isUniqueViolation(result.Error) {
		return domainerror.ErrEmailAlreadyExists
	}
	return result.Error
}

// Delete erases a user and every row they own, children first, in one
// transaction. Soft-deleted transactions are purged too.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedGoals := tx.Model(&model.GoalModel{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("goal_id IN (?)", ownedGoals).Delete(&model.ActivityModel{}).Error; err != nil {
			return err
		}

		owned := []any{
			&model.GoalModel{},
			&model.CategoryModel{},
			&model.NutritionEntryModel{},
			&model.SessionModel{},
			&model.PasswordResetModel{},
			&model.EmailQueueModel{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.UserModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrUserNotFound
		}
		return nil
	})
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// isUniqueViolation recognises duplicate-key errors from postgres and sqlite,
// whether or not gorm translated them.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
