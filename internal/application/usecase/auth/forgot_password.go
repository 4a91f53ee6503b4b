package auth

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/lifescope/backend/internal/application/adapter"
)

// resetRequestedMessage is returned whether or not the account exists.
const resetRequestedMessage = "If an account with that email exists, we have sent a password reset link"

type ForgotPasswordInput struct {
	Email string
}

type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase issues a reset token and queues the reset email.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	clock             adapter.Clock
	appBaseURL        string
}

// NewForgotPasswordUseCase accepts a nil emailService, in which case the reset
// link is only logged.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	clock adapter.Clock,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		clock:             clock,
		appBaseURL:        appBaseURL,
	}
}

// Execute validates the address and, for a known account, sends a reset link.
// Every outcome past validation reports the same message.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email := normalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, invalidEmail()
	}

	done := &ForgotPasswordOutput{Message: resetRequestedMessage}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("password reset requested for unknown email")
		return done, nil
	}

	token, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("failed to generate reset token", "user_id", user.ID, "error", err)
		return done, nil
	}

	link := uc.resetLink(token.Token)
	if uc.emailService == nil {
		slog.Info("email disabled, reset link not sent", "user_id", user.ID, "reset_url", link)
		return done, nil
	}

	err = uc.emailService.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		To:        adapter.RecipientOf(user),
		ResetURL:  link,
		ExpiresIn: validityLabel(token.ExpiresAt.Sub(uc.clock.Now())),
	})
	if err != nil {
		slog.Error("failed to queue password reset email", "user_id", user.ID, "error", err)
	}
	return done, nil
}

func (uc *ForgotPasswordUseCase) resetLink(token string) string {
	return uc.appBaseURL + "/reset-password?" + url.Values{"token": {token}}.Encode()
}

// validityLabel renders a token lifetime for the email body.
func validityLabel(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	switch {
	case minutes >= 120:
		return formatCount(minutes/60, "hour")
	case minutes >= 60:
		return "1 hour"
	case minutes <= 1:
		return "1 minute"
	default:
		return formatCount(minutes, "minute")
	}
}

func formatCount(n int, unit string) string {
	return strconv.Itoa(n) + " " + unit + "s"
}
