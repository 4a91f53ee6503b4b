package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/domain/valueobject"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

func TestUserRepository_CreateRejectsTakenEmail(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	createUser(t, gormDB, "taken@example.com")

	err := repo.Create(ctx, entity.NewUser("taken@example.com", "Second", "hash", time.Now()))
	assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)

	exists, err := repo.ExistsByEmail(ctx, " Taken@Example.com ")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := repo.FindByEmail(ctx, "TAKEN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "taken@example.com", found.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestUserRepository_DeleteErasesOwnedData(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	user := createUser(t, gormDB, "leaving@example.com")
	other := createUser(t, gormDB, "staying@example.com")

	for _, owner := range []*entity.User{user, other} {
		goal := entity.NewGoal(owner.ID, "Walk more", "", "Health", entity.GoalPriorityMedium, nil, time.Now())
		require.NoError(t, NewGoalRepository(gormDB).Create(ctx, goal))
		require.NoError(t, NewActivityRepository(gormDB).Create(ctx,
			entity.NewActivity(goal.ID, "Walk", valueobject.FrequencyDaily, nil, time.Now())))
		require.NoError(t, NewCategoryRepository(gormDB).Create(ctx,
			entity.NewCategory(owner.ID, "Hobbies", "#10B981", "tag", time.Now())))
		require.NoError(t, NewNutritionRepository(gormDB).Create(ctx,
			entity.NewNutritionEntry(owner.ID, "Apple", entity.MealTypeSnack, entity.Macros{Calories: 95}, time.Now(), time.Now())))
		require.NoError(t, NewTransactionRepository(gormDB).Create(ctx,
			entity.NewTransaction(owner.ID, entity.TransactionDraft{Date: time.Now().UTC(), Description: "Shoes", Amount: decimal.NewFromInt(80), Type: entity.TransactionTypeExpense}, time.Now())))
		require.NoError(t, NewTokenRepository(gormDB).SaveRefreshToken(ctx, StoredToken{Digest: "token-" + owner.Email, UserID: owner.ID, ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now()}))
		require.NoError(t, NewEmailQueueRepository(gormDB).Create(ctx,
			entity.NewEmailJob(entity.TemplateWelcome, owner.ID, owner.Email, owner.Name, "Welcome", nil, time.Now())))
	}

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	tables := map[string]any{
		"goals":             &model.GoalModel{},
		"goal_activities":   &model.ActivityModel{},
		"goal_categories":   &model.CategoryModel{},
		"nutrition_entries": &model.NutritionEntryModel{},
		"transactions":      &model.TransactionModel{},
		"sessions":          &model.SessionModel{},
		"email_queue":       &model.EmailQueueModel{},
	}
	for name, m := range tables {
		var count int64
		require.NoError(t, gormDB.Unscoped().Model(m).Count(&count).Error, name)
		assert.Equal(t, int64(1), count, "%s should keep only the other user's row", name)
	}

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), domainerror.ErrUserNotFound)
}
