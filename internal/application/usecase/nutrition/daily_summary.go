package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

type DailySummaryInput struct {
	UserID uuid.UUID
	Day    *time.Time
}

// DailySummaryUseCase totals a day's entries overall and per meal type.
type DailySummaryUseCase struct {
	nutritionRepo adapter.NutritionRepository
	clock         adapter.Clock
}

func NewDailySummaryUseCase(nutritionRepo adapter.NutritionRepository, clock adapter.Clock) *DailySummaryUseCase {
	return &DailySummaryUseCase{
		nutritionRepo: nutritionRepo,
		clock:         clock,
	}
}

// Execute computes the summary.
func (uc *DailySummaryUseCase) Execute(ctx context.Context, input DailySummaryInput) (*entity.DailyNutrition, error) {
	start, end := dayRange(ctx, uc.clock, input.Day)

	entries, err := uc.nutritionRepo.FindByUserAndRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrition entries: %w", err)
	}

	return entity.SummarizeNutrition(start, entries), nil
}

// RangeSummary totals the days in [from, to) for the life report. Days
// without entries are included with zero totals.
func RangeSummary(ctx context.Context, repo adapter.NutritionRepository, userID uuid.UUID, from, to time.Time) ([]*entity.DailyNutrition, error) {
	entries, err := repo.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrition entries: %w", err)
	}

	loc := from.Location()
	byDay := make(map[string][]*entity.NutritionEntry)
	for _, e := range entries {
		key := e.ConsumedAt.In(loc).Format(time.DateOnly)
		byDay[key] = append(byDay[key], e)
	}

	var days []*entity.DailyNutrition
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		days = append(days, entity.SummarizeNutrition(day, byDay[day.Format(time.DateOnly)]))
	}
	return days, nil
}
