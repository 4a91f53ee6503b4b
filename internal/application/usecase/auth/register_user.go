package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	Timezone      string
	TermsAccepted bool
}

type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RegisterUserUseCase creates an account and signs the new user in.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	emailService    adapter.EmailService
	clock           adapter.Clock
}

// NewRegisterUserUseCase accepts a nil emailService; then no welcome email is queued.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		emailService:    emailService,
		clock:           clock,
	}
}

// Execute validates the sign-up form, stores the user and returns a session.
// Input checks run before the email uniqueness lookup.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	if !input.TermsAccepted {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeTermsNotAccepted,
			"terms of service must be accepted",
			domainerror.ErrTermsNotAccepted,
		)
	}

	email := normalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, invalidEmail()
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, weakPassword(err)
	}
	timezone := strings.TrimSpace(input.Timezone)
	if timezone != "" && !entity.IsValidTimezone(timezone) {
		return nil, invalidTimezone()
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, emailTaken()
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, strings.TrimSpace(input.Name), hash, uc.clock.Now().UTC())
	if timezone != "" {
		user.Timezone = timezone
	}

	// A concurrent sign-up with the same address loses at the unique index.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, subjectOf(user), false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if uc.emailService != nil {
		if err := uc.emailService.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
			To: adapter.RecipientOf(user),
		}); err != nil {
			slog.Warn("failed to queue welcome email", "user_id", user.ID, "error", err)
		}
	}

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

func emailTaken() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeEmailExists,
		"email already exists",
		domainerror.ErrEmailAlreadyExists,
	)
}
