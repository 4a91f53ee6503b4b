package auth

import (
	"context"
	"log/slog"

	"github.com/lifescope/backend/internal/application/adapter"
)

type LogoutUserInput struct {
	RefreshToken string
	// AllDevices revokes every refresh token of the token's owner.
	AllDevices bool
}

type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase ends one session or all of a user's sessions.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute always succeeds: a token that is already invalid leaves nothing to end.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.AllDevices {
		claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
		if err == nil {
			if err := uc.tokenService.InvalidateAllUserTokens(ctx, claims.UserID); err != nil {
				slog.Warn("failed to end all sessions", "user_id", claims.UserID, "error", err)
			}
			return &LogoutUserOutput{Message: "Logged out on all devices"}, nil
		}
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.Debug("logout with unusable refresh token", "error", err)
	}
	return &LogoutUserOutput{Message: "Successfully logged out"}, nil
}
