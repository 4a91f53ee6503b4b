package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

func TestNutritionRepository_FindByUserAndRange(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewNutritionRepository(gormDB)
	ctx := context.Background()
	user := createUser(t, gormDB, "food@example.com")

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	breakfast := entity.NewNutritionEntry(user.ID, "Oats", entity.MealTypeBreakfast,
		entity.Macros{Calories: 350, ProteinG: 12, CarbsG: 60, FatG: 7}, day.Add(8*time.Hour), time.Now())
	dinner := entity.NewNutritionEntry(user.ID, "Salmon", entity.MealTypeDinner,
		entity.Macros{Calories: 600, ProteinG: 40, CarbsG: 20, FatG: 35}, day.Add(19*time.Hour), time.Now())
	nextDay := entity.NewNutritionEntry(user.ID, "Toast", entity.MealTypeBreakfast,
		entity.Macros{Calories: 200}, day.Add(32*time.Hour), time.Now())
	for _, e := range []*entity.NutritionEntry{dinner, nextDay, breakfast} {
		require.NoError(t, repo.Create(ctx, e))
	}

	entries, err := repo.FindByUserAndRange(ctx, user.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Oats", entries[0].Name)
	assert.Equal(t, "Salmon", entries[1].Name)
	assert.Equal(t, 600, entries[1].Macros.Calories)
	assert.InDelta(t, 35.0, entries[1].Macros.FatG, 0.001)

	require.NoError(t, repo.Delete(ctx, breakfast.ID))
	_, err = repo.FindByID(ctx, breakfast.ID)
	assert.ErrorIs(t, err, domainerror.ErrNutritionEntryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, breakfast.ID), domainerror.ErrNutritionEntryNotFound)
}
