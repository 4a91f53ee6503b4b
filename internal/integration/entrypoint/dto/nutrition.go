package dto

import (
	"time"

	"github.com/lifescope/backend/internal/domain/entity"
)

// CreateNutritionEntryRequest represents the request body for logging food.
type CreateNutritionEntryRequest struct {
	Name       string     `json:"name" binding:"required,max=120"`
	MealType   string     `json:"meal_type" binding:"required"`
	Calories   int        `json:"calories" binding:"min=0"`
	ProteinG   float64    `json:"protein_g" binding:"min=0"`
	CarbsG     float64    `json:"carbs_g" binding:"min=0"`
	FatG       float64    `json:"fat_g" binding:"min=0"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	Notes      string     `json:"notes" binding:"max=1000"`
}

// NutritionDayQuery selects a calendar day; empty means today.
type NutritionDayQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MacrosResponse represents calories and macronutrients.
type MacrosResponse struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// NutritionEntryResponse represents a nutrition entry in API responses.
type NutritionEntryResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	MealType   string         `json:"meal_type"`
	Macros     MacrosResponse `json:"macros"`
	ConsumedAt time.Time      `json:"consumed_at"`
	Notes      string         `json:"notes,omitempty"`
}

// NutritionListResponse represents a day of entries.
type NutritionListResponse struct {
	Date    string                   `json:"date"`
	Entries []NutritionEntryResponse `json:"entries"`
}

// NutritionSummaryResponse represents a day's totals.
type NutritionSummaryResponse struct {
	Date       string                    `json:"date"`
	EntryCount int                       `json:"entry_count"`
	Total      MacrosResponse            `json:"total"`
	ByMealType map[string]MacrosResponse `json:"by_meal_type"`
}

// ToMacrosResponse converts entity.Macros.
func ToMacrosResponse(m entity.Macros) MacrosResponse {
	return MacrosResponse{
		Calories: m.Calories,
		ProteinG: m.ProteinG,
		CarbsG:   m.CarbsG,
		FatG:     m.FatG,
	}
}

// ToNutritionEntryResponse converts an entry, rendering consumed_at in loc.
func ToNutritionEntryResponse(e *entity.NutritionEntry, loc *time.Location) NutritionEntryResponse {
	return NutritionEntryResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		MealType:   string(e.MealType),
		Macros:     ToMacrosResponse(e.Macros),
		ConsumedAt: e.ConsumedAt.In(loc),
		Notes:      e.Notes,
	}
}

// ToNutritionListResponse converts a day of entries.
func ToNutritionListResponse(day time.Time, entries []*entity.NutritionEntry) NutritionListResponse {
	items := make([]NutritionEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = ToNutritionEntryResponse(e, day.Location())
	}
	return NutritionListResponse{
		Date:    day.Format(dateLayout),
		Entries: items,
	}
}

// ToNutritionSummaryResponse converts a daily summary.
func ToNutritionSummaryResponse(s *entity.DailyNutrition) NutritionSummaryResponse {
	byMeal := make(map[string]MacrosResponse, len(s.ByMealType))
	for meal, m := range s.ByMealType {
		byMeal[string(meal)] = ToMacrosResponse(m)
	}
	return NutritionSummaryResponse{
		Date:       s.Date.Format(dateLayout),
		EntryCount: s.EntryCount,
		Total:      ToMacrosResponse(s.Total),
		ByMealType: byMeal,
	}
}

// ParseDay parses a YYYY-MM-DD query value as local midnight in loc.
func ParseDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
