package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

type ListCategoriesInput struct {
	UserID uuid.UUID
}

// ListCategoriesOutput holds every category the user can file goals under.
// Default categories come first in their fixed order, then custom ones by name.
type ListCategoriesOutput struct {
	Categories []*entity.CategoryWithStats
}

type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	custom, err := uc.categoryRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	counts, err := uc.categoryRepo.CountGoalsByCategory(ctx, input.UserID)
	if err != nil {
		// Counts are decorative; list without them.
		slog.Warn("failed to count goals per category", "user_id", input.UserID, "error", err)
		counts = map[string]int64{}
	}

	all := make([]*entity.Category, 0, len(entity.DefaultCategories)+len(custom))
	all = append(all, entity.DefaultCategories...)
	all = append(all, custom...)

	output := &ListCategoriesOutput{
		Categories: make([]*entity.CategoryWithStats, len(all)),
	}
	for i, c := range all {
		output.Categories[i] = &entity.CategoryWithStats{
			Category:  c,
			GoalCount: counts[c.Name],
		}
	}

	return output, nil
}
