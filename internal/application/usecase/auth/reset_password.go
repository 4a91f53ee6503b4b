package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

type ResetPasswordOutput struct {
	Message string
}

// ResetPasswordUseCase redeems a mailed reset token for a new password.
type ResetPasswordUseCase struct {
	userRepo          adapter.UserRepository
	passwordService   adapter.PasswordService
	resetTokenService adapter.PasswordResetTokenService
	tokenService      adapter.TokenService
	clock             adapter.Clock
}

func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	resetTokenService adapter.PasswordResetTokenService,
	tokenService adapter.TokenService,
	clock adapter.Clock,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:          userRepo,
		passwordService:   passwordService,
		resetTokenService: resetTokenService,
		tokenService:      tokenService,
		clock:             clock,
	}
}

func resetTokenError(code domainerror.AuthErrorCode, message string) error {
	return domainerror.NewAuthError(code, message, domainerror.ErrInvalidResetToken)
}

// Execute replaces the password and signs the user out everywhere. The token
// is consumed after hashing and before the save, so of two concurrent resets
// with one token only the first changes the password.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	token, err := uc.resetTokenService.ValidateResetToken(ctx, input.Token)
	switch {
	case errors.Is(err, domainerror.ErrInvalidResetToken):
		return nil, resetTokenError(domainerror.ErrCodeInvalidResetToken, "invalid or expired password reset token")
	case err != nil:
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	now := uc.clock.Now().UTC()
	if !now.Before(token.ExpiresAt) {
		return nil, resetTokenError(domainerror.ErrCodeExpiredResetToken, "password reset token has expired")
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, weakPassword(err)
	}

	user, err := uc.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	hash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	switch err := uc.resetTokenService.InvalidateResetToken(ctx, input.Token); {
	case errors.Is(err, domainerror.ErrInvalidResetToken):
		return nil, resetTokenError(domainerror.ErrCodeInvalidResetToken, "password reset token has already been used")
	case err != nil:
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	// Sessions opened with the old password end; a failure here leaves them
	// to expire on their own.
	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		slog.Warn("failed to end sessions after password reset", "user_id", user.ID, "error", err)
	}
	return &ResetPasswordOutput{Message: "Password has been successfully reset"}, nil
}
