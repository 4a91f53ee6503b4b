package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// DeleteConfirmation must be typed by the user to erase an account.
const DeleteConfirmation = "DELETE"

type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase erases a user and everything they recorded.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute checks the password and confirmation, then removes the account
// together with its goals, activities, categories, nutrition log and
// transactions in one store transaction.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != DeleteConfirmation {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly '"+DeleteConfirmation+"'",
			domainerror.ErrConfirmationMismatch,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("account erased", "user_id", user.ID)
	return &DeleteAccountOutput{Success: true}, nil
}
