package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/integration/persistence"
)

const resetLifetime = time.Hour

// resetTokens issues random single-use password reset tokens. Only their
// digest is stored.
type resetTokens struct {
	store persistence.TokenRepository
	clock adapter.Clock
}

func NewPasswordResetTokenService(store persistence.TokenRepository, clock adapter.Clock) adapter.PasswordResetTokenService {
	return &resetTokens{store: store, clock: clock}
}

func (s *resetTokens) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	token := hex.EncodeToString(buf[:])

	now := s.clock.Now()
	expires := now.Add(resetLifetime)
	if err := s.store.SaveResetToken(ctx, persistence.StoredToken{
		Digest: digest(token), UserID: userID, Email: email, ExpiresAt: expires, CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("store reset token: %w", err)
	}
	return &adapter.PasswordResetToken{Token: token, UserID: userID, Email: email, ExpiresAt: expires}, nil
}

// ValidateResetToken returns an unused token even after it expired. The
// caller reports expiry itself.
func (s *resetTokens) ValidateResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	stored, err := s.store.FindResetToken(ctx, digest(token))
	if err != nil {
		return nil, err
	}
	return &adapter.PasswordResetToken{Token: token, UserID: stored.UserID, Email: stored.Email, ExpiresAt: stored.ExpiresAt}, nil
}

// InvalidateResetToken consumes the token, failing with
// ErrInvalidResetToken on a second use.
func (s *resetTokens) InvalidateResetToken(ctx context.Context, token string) error {
	return s.store.ConsumeResetToken(ctx, digest(token), s.clock.Now())
}
