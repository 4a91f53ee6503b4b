package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	// VerifyPassword returns nil only when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error
	// ValidatePasswordStrength rejects passwords a new hash must not be built from.
	ValidatePasswordStrength(password string) error
}

// TokenSubject identifies the user a token pair is issued for.
type TokenSubject struct {
	UserID   uuid.UUID
	Email    string
	Timezone string
}

// TokenPair is what sign-in, registration and refresh hand back to a client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Timezone  string
	ExpiresAt time.Time
}

// Subject returns the identity the claims were issued for.
func (c *TokenClaims) Subject() TokenSubject {
	return TokenSubject{UserID: c.UserID, Email: c.Email, Timezone: c.Timezone}
}

// TokenService issues session tokens and tracks which refresh tokens are
// still honoured. Access tokens are stateless and expire on their own.
type TokenService interface {
	// GenerateTokenPair records the refresh token so it can be revoked later.
	// rememberMe stretches the refresh lifetime.
	GenerateTokenPair(ctx context.Context, subject TokenSubject, rememberMe bool) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	// ValidateRefreshToken checks the signature and expiry only. Pair it with
	// IsRefreshTokenValid to see revocation.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
	InvalidateRefreshToken(ctx context.Context, token string) error
	// InvalidateAllUserTokens signs the user out on every device.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetToken is a single-use token mailed to a user who forgot
// their password.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService hands out and redeems password reset tokens.
type PasswordResetTokenService interface {
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)
	// ValidateResetToken finds an unused token. Expired tokens are returned
	// too so the caller can say why the reset failed.
	ValidateResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	// InvalidateResetToken consumes the token and fails with
	// ErrInvalidResetToken when it was already used.
	InvalidateResetToken(ctx context.Context, token string) error
}
