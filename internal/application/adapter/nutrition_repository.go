package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// NutritionRepository defines the interface for nutrition log persistence.
type NutritionRepository interface {
	// Create stores a new entry.
	Create(ctx context.Context, entry *entity.NutritionEntry) error

	// FindByID retrieves an entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.NutritionEntry, error)

	// FindByUserAndRange retrieves a user's entries consumed in [from, to), oldest first.
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.NutritionEntry, error)

	// Delete removes an entry.
	Delete(ctx context.Context, id uuid.UUID) error
}
