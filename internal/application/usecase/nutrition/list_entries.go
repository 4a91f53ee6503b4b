package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

type ListEntriesInput struct {
	UserID uuid.UUID
	Day    *time.Time // Any instant on the wanted day; defaults to today
}

type ListEntriesOutput struct {
	Day     time.Time
	Entries []*entity.NutritionEntry
}

// ListEntriesUseCase lists the entries of one day in the caller's timezone.
type ListEntriesUseCase struct {
	nutritionRepo adapter.NutritionRepository
	clock         adapter.Clock
}

func NewListEntriesUseCase(nutritionRepo adapter.NutritionRepository, clock adapter.Clock) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		nutritionRepo: nutritionRepo,
		clock:         clock,
	}
}

// Execute returns the entries consumed between local midnights of the day.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	start, end := dayRange(ctx, uc.clock, input.Day)

	entries, err := uc.nutritionRepo.FindByUserAndRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition entries: %w", err)
	}

	return &ListEntriesOutput{
		Day:     start,
		Entries: entries,
	}, nil
}

// dayRange resolves day (or now) in the request location and returns its bounds.
func dayRange(ctx context.Context, clock adapter.Clock, day *time.Time) (time.Time, time.Time) {
	loc := adapter.LocationFromContext(ctx)
	ref := clock.Now()
	if day != nil {
		ref = *day
	}
	return entity.DayBounds(ref.In(loc))
}
