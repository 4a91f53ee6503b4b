package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase removes a custom category once no goal is filed
// under it.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	goalRepo     adapter.GoalRepository
}

func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, goalRepo adapter.GoalRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		goalRepo:     goalRepo,
	}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	inUse, err := uc.goalRepo.CountByCategory(ctx, input.UserID, category.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals in category: %w", err)
	}
	if inUse > 0 {
		return nil, categoryError(domainerror.ErrCodeCategoryInUse, domainerror.ErrCategoryInUse,
			fmt.Sprintf("category is used by %d goal(s)", inUse))
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}
