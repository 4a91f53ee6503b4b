package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// NutritionEntryModel represents the nutrition_entries table in the database.
type NutritionEntryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_nutrition_user_consumed,priority:1"`
	Name       string    `gorm:"type:varchar(120);not null"`
	MealType   string    `gorm:"type:varchar(20);not null"`
	Calories   int       `gorm:"not null;default:0"`
	ProteinG   float64   `gorm:"not null;default:0"`
	CarbsG     float64   `gorm:"not null;default:0"`
	FatG       float64   `gorm:"not null;default:0"`
	ConsumedAt time.Time `gorm:"not null;index:idx_nutrition_user_consumed,priority:2"`
	Notes      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the NutritionEntryModel.
func (NutritionEntryModel) TableName() string {
	return "nutrition_entries"
}

// ToEntity converts a NutritionEntryModel to a domain NutritionEntry entity.
func (m *NutritionEntryModel) ToEntity() *entity.NutritionEntry {
	return &entity.NutritionEntry{
		ID:       m.ID,
		UserID:   m.UserID,
		Name:     m.Name,
		MealType: entity.MealType(m.MealType),
		Macros: entity.Macros{
			Calories: m.Calories,
			ProteinG: m.ProteinG,
			CarbsG:   m.CarbsG,
			FatG:     m.FatG,
		},
		ConsumedAt: m.ConsumedAt.UTC(),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

// NutritionEntryFromEntity creates a NutritionEntryModel from a domain NutritionEntry entity.
func NutritionEntryFromEntity(e *entity.NutritionEntry) *NutritionEntryModel {
	return &NutritionEntryModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Name:       e.Name,
		MealType:   string(e.MealType),
		Calories:   e.Macros.Calories,
		ProteinG:   e.Macros.ProteinG,
		CarbsG:     e.Macros.CarbsG,
		FatG:       e.Macros.FatG,
		ConsumedAt: e.ConsumedAt.UTC(),
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}
