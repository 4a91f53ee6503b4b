package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// CategoryRepository stores a user's custom goal categories. The built-in
// categories live in entity.DefaultCategories and never reach it.
type CategoryRepository interface {
	// Create and Update fail with domainerror.ErrCategoryNameExists when the
	// user already owns the name in any letter case.
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// FindByUserID lists the categories alphabetically.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)
	// FindByName matches the name ignoring case and surrounding space.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountGoalsByCategory(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
}
