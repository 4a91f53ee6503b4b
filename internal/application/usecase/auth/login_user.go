package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
	// Timezone is the zone detected by the client. It is adopted only while
	// the account still has the default zone.
	Timezone string
}

type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LoginUserUseCase authenticates a user and opens a session.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	clock           adapter.Clock
}

func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	clock adapter.Clock,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		clock:           clock,
	}
}

// Execute verifies the credentials and issues a token pair.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, invalidCredentials()
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	uc.adoptTimezone(ctx, user, input.Timezone)

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, subjectOf(user), input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// adoptTimezone stores the client's zone for accounts created without one.
// A zone the user picked explicitly is never overwritten. Failure to save is
// logged and the login proceeds with the stored zone.
func (uc *LoginUserUseCase) adoptTimezone(ctx context.Context, user *entity.User, zone string) {
	if user.Timezone != entity.DefaultTimezone || zone == "" || zone == user.Timezone {
		return
	}
	if !entity.IsValidTimezone(zone) {
		slog.Debug("ignoring unknown client timezone", "user_id", user.ID, "timezone", zone)
		return
	}

	previous := user.Timezone
	user.Timezone = zone
	user.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		slog.Warn("failed to store client timezone", "user_id", user.ID, "error", err)
		user.Timezone = previous
	}
}
