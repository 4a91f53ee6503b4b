// Package nutrition contains nutrition log use cases.
package nutrition

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// MaxEntryNameLength is the maximum allowed length for entry names.
const MaxEntryNameLength = 120

type CreateEntryInput struct {
	UserID     uuid.UUID
	Name       string
	MealType   string
	Calories   int
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	ConsumedAt *time.Time // Optional, defaults to now
	Notes      string
}

type CreateEntryOutput struct {
	Entry *entity.NutritionEntry
}

// CreateEntryUseCase handles nutrition entry creation.
type CreateEntryUseCase struct {
	nutritionRepo adapter.NutritionRepository
	clock         adapter.Clock
}

func NewCreateEntryUseCase(nutritionRepo adapter.NutritionRepository, clock adapter.Clock) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		nutritionRepo: nutritionRepo,
		clock:         clock,
	}
}

// Execute validates and stores the entry.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewNutritionError(
			domainerror.ErrCodeNutritionNameRequired,
			"name is required",
			domainerror.ErrNutritionNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxEntryNameLength {
		return nil, domainerror.NewNutritionError(
			domainerror.ErrCodeNutritionNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxEntryNameLength),
			domainerror.ErrNutritionNameRequired,
		)
	}

	mealType, ok := entity.ParseMealType(input.MealType)
	if !ok {
		return nil, domainerror.NewNutritionError(
			domainerror.ErrCodeInvalidMealType,
			"meal type must be one of breakfast, lunch, dinner, snack",
			domainerror.ErrInvalidMealType,
		)
	}

	macros := entity.Macros{
		Calories: input.Calories,
		ProteinG: input.ProteinG,
		CarbsG:   input.CarbsG,
		FatG:     input.FatG,
	}
	if macros.Calories < 0 || macros.ProteinG < 0 || macros.CarbsG < 0 || macros.FatG < 0 {
		return nil, domainerror.NewNutritionError(
			domainerror.ErrCodeNegativeMacros,
			"calories and macros must not be negative",
			domainerror.ErrNegativeMacros,
		)
	}

	now := uc.clock.Now()
	consumedAt := now
	if input.ConsumedAt != nil {
		consumedAt = *input.ConsumedAt
	}

	entry := entity.NewNutritionEntry(input.UserID, name, mealType, macros, consumedAt, now)
	entry.Notes = strings.TrimSpace(input.Notes)

	if err := uc.nutritionRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create nutrition entry: %w", err)
	}

	return &CreateEntryOutput{
		Entry: entry,
	}, nil
}
