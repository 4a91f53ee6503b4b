package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MealType groups nutrition entries within a day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes lists the accepted meal types in the order a day goes.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

// IsValid reports whether m is one of the accepted meal types.
func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// ParseMealType matches s case-insensitively against the accepted meal types.
func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// Macros holds calories and macronutrients in grams.
type Macros struct {
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// Add returns the sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		ProteinG: m.ProteinG + o.ProteinG,
		CarbsG:   m.CarbsG + o.CarbsG,
		FatG:     m.FatG + o.FatG,
	}
}

// NutritionEntry is one logged food item.
type NutritionEntry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	MealType   MealType
	Macros     Macros
	ConsumedAt time.Time
	Notes      string
	CreatedAt  time.Time
}

// NewNutritionEntry creates a new NutritionEntry.
func NewNutritionEntry(userID uuid.UUID, name string, mealType MealType, macros Macros, consumedAt, now time.Time) *NutritionEntry {
	return &NutritionEntry{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		MealType:   mealType,
		Macros:     macros,
		ConsumedAt: consumedAt.UTC(),
		CreatedAt:  now.UTC(),
	}
}

// DailyNutrition summarizes the entries of one local day.
type DailyNutrition struct {
	Date       time.Time
	Total      Macros
	ByMealType map[MealType]Macros
	EntryCount int
}

// SummarizeNutrition totals entries overall and per meal type. Every meal
// type is present in the result, zero when nothing was logged for it.
func SummarizeNutrition(day time.Time, entries []*NutritionEntry) *DailyNutrition {
	summary := &DailyNutrition{
		Date:       day,
		ByMealType: make(map[MealType]Macros, len(MealTypes)),
	}
	for _, m := range MealTypes {
		summary.ByMealType[m] = Macros{}
	}
	for _, e := range entries {
		summary.Total = summary.Total.Add(e.Macros)
		summary.ByMealType[e.MealType] = summary.ByMealType[e.MealType].Add(e.Macros)
		summary.EntryCount++
	}
	return summary
}

// DayBounds returns local midnight of t's date and the following midnight.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
