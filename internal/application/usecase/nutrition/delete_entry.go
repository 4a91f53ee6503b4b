package nutrition

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type DeleteEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// DeleteEntryUseCase removes an entry owned by the caller.
type DeleteEntryUseCase struct {
	nutritionRepo adapter.NutritionRepository
}

func NewDeleteEntryUseCase(nutritionRepo adapter.NutritionRepository) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		nutritionRepo: nutritionRepo,
	}
}

// Execute deletes the entry. Entries of other users are reported as not found.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	entry, err := uc.nutritionRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNutritionEntryNotFound) {
			return notFoundError()
		}
		return fmt.Errorf("failed to find nutrition entry: %w", err)
	}
	if entry.UserID != input.UserID {
		return notFoundError()
	}

	if err := uc.nutritionRepo.Delete(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to delete nutrition entry: %w", err)
	}
	return nil
}

func notFoundError() error {
	return domainerror.NewNutritionError(
		domainerror.ErrCodeNutritionEntryNotFound,
		"nutrition entry not found",
		domainerror.ErrNutritionEntryNotFound,
	)
}
