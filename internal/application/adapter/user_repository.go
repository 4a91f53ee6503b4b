package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// UserRepository stores accounts. Lookups by email ignore case, and both
// finders return domainerror.ErrUserNotFound for a missing account.
type UserRepository interface {
	// Create fails with domainerror.ErrEmailAlreadyExists on a taken email.
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete erases the account together with everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
