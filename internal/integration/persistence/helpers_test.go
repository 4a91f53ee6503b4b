package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/infra/db"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

// newTestDB opens a migrated SQLite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "persistence.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(model.All()...))
	t.Cleanup(func() { _ = database.Close() })

	return database.DB()
}

func createUser(t *testing.T, gormDB *gorm.DB, email string) *entity.User {
	t.Helper()

	user := entity.NewUser(email, "Test User", "hash", time.Now())
	require.NoError(t, NewUserRepository(gormDB).Create(context.Background(), user))
	return user
}
