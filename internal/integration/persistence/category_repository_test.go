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

func TestCategoryRepository(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewCategoryRepository(gormDB)
	ctx := context.Background()
	user := createUser(t, gormDB, "categories@example.com")
	other := createUser(t, gormDB, "someone@example.com")

	reading := entity.NewCategory(user.ID, "Reading", "#10B981", "book", time.Now())
	require.NoError(t, repo.Create(ctx, reading))
	require.NoError(t, repo.Create(ctx, entity.NewCategory(other.ID, "Reading", "#10B981", "book", time.Now())))

	found, err := repo.FindByName(ctx, user.ID, "  reading ")
	require.NoError(t, err)
	assert.Equal(t, reading.ID, found.ID)

	_, err = repo.FindByName(ctx, user.ID, "Gardening")
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	err = repo.Create(ctx, entity.NewCategory(user.ID, "READING", "#10B981", "book", time.Now()))
	assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists, "names are unique per user in any case")

	cooking := entity.NewCategory(user.ID, "Cooking", "#EF4444", "utensils", time.Now())
	require.NoError(t, repo.Create(ctx, cooking))
	cooking.Name = "reading"
	assert.ErrorIs(t, repo.Update(ctx, cooking), domainerror.ErrCategoryNameExists)
	require.NoError(t, repo.Delete(ctx, cooking.ID))

	found.Color = "#F59E0B"
	require.NoError(t, repo.Update(ctx, found))
	found, err = repo.FindByID(ctx, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, "#F59E0B", found.Color)

	mine, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.Delete(ctx, reading.ID))
	_, err = repo.FindByID(ctx, reading.ID)
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}
