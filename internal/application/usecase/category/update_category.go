package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// UpdateCategoryInput is a patch. Nil fields are left alone and an empty
// Color or Icon puts the default back.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
	Name       *string
	Color      *string
	Icon       *string
}

type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase patches a custom category. Goals are filed by
// category name, so a rename moves the user's goals along with it.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	goalRepo     adapter.GoalRepository
	clock        adapter.Clock
}

func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, goalRepo adapter.GoalRepository, clock adapter.Clock) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo, goalRepo: goalRepo, clock: clock}
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}
	oldName := category.Name

	if input.Name != nil {
		name, err := cleanName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != category.Name {
			if err := ensureNameAvailable(ctx, uc.categoryRepo, input.UserID, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if input.Color != nil {
		color, err := cleanColor(*input.Color)
		if err != nil {
			return nil, err
		}
		if color == "" {
			color = entity.DefaultCategoryColor
		}
		category.Color = color
	}
	if input.Icon != nil {
		category.Icon = cleanIcon(*input.Icon)
		if category.Icon == "" {
			category.Icon = entity.DefaultCategoryIcon
		}
	}
	category.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, writeError("update", err)
	}

	if category.Name != oldName {
		if err := uc.goalRepo.RenameCategory(ctx, input.UserID, oldName, category.Name); err != nil {
			return nil, fmt.Errorf("failed to refile goals under %q: %w", category.Name, err)
		}
	}
	return &UpdateCategoryOutput{Category: category}, nil
}
