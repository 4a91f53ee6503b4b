// Package category manages the custom goal categories a user keeps next to
// the built-in ones.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// CreateCategoryInput leaves Color and Icon empty to take the defaults.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Color  string
	Icon   string
}

type CreateCategoryOutput struct {
	Category *entity.Category
}

type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo, clock: clock}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	color, err := cleanColor(input.Color)
	if err != nil {
		return nil, err
	}
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := cleanIcon(input.Icon)
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	if err := ensureNameAvailable(ctx, uc.categoryRepo, input.UserID, name, uuid.Nil); err != nil {
		return nil, err
	}

	category := entity.NewCategory(input.UserID, name, color, icon, uc.clock.Now().UTC())
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, writeError("create", err)
	}
	return &CreateCategoryOutput{Category: category}, nil
}
