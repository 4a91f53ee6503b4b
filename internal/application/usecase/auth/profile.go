package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// GetProfileUseCase returns the authenticated user's profile.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute loads the user.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	return user, nil
}

// UpdateProfileInput represents a partial profile update. Nil fields are kept.
type UpdateProfileInput struct {
	UserID             uuid.UUID
	Name               *string
	Timezone           *string
	EmailNotifications *bool
	DailyReminders     *bool
}

// UpdateProfileUseCase applies profile changes.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
	clock    adapter.Clock
}

func NewUpdateProfileUseCase(userRepo adapter.UserRepository, clock adapter.Clock) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo, clock: clock}
}

// Execute validates and saves the changes, returning the updated user.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "name cannot be empty", nil)
	}
	if input.Timezone != nil && !entity.IsValidTimezone(*input.Timezone) {
		return nil, invalidTimezone()
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}
	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.DailyReminders != nil {
		user.DailyReminders = *input.DailyReminders
	}
	user.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
