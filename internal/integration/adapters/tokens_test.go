package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

// tokenStore keeps tokens in maps keyed by digest.
type tokenStore struct {
	sessions map[string]persistence.StoredToken
	revoked  map[string]bool
	resets   map[string]persistence.StoredToken
	used     map[string]bool
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		sessions: map[string]persistence.StoredToken{},
		revoked:  map[string]bool{},
		resets:   map[string]persistence.StoredToken{},
		used:     map[string]bool{},
	}
}

func (s *tokenStore) SaveRefreshToken(_ context.Context, t persistence.StoredToken) error {
	s.sessions[t.Digest] = t
	return nil
}

func (s *tokenStore) IsRefreshTokenActive(_ context.Context, d string, now time.Time) (bool, error) {
	t, ok := s.sessions[d]
	return ok && !s.revoked[d] && t.ExpiresAt.After(now), nil
}

func (s *tokenStore) RevokeRefreshToken(_ context.Context, d string) error {
	s.revoked[d] = true
	return nil
}

func (s *tokenStore) RevokeUserRefreshTokens(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for d, t := range s.sessions {
		if t.UserID == userID && !s.revoked[d] {
			s.revoked[d] = true
			n++
		}
	}
	return n, nil
}

func (s *tokenStore) SaveResetToken(_ context.Context, t persistence.StoredToken) error {
	s.resets[t.Digest] = t
	return nil
}

func (s *tokenStore) FindResetToken(_ context.Context, d string) (*persistence.StoredToken, error) {
	t, ok := s.resets[d]
	if !ok || s.used[d] {
		return nil, domainerror.ErrInvalidResetToken
	}
	return &t, nil
}

func (s *tokenStore) ConsumeResetToken(_ context.Context, d string, _ time.Time) error {
	if _, ok := s.resets[d]; !ok || s.used[d] {
		return domainerror.ErrInvalidResetToken
	}
	s.used[d] = true
	return nil
}

func (s *tokenStore) PurgeExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func newSessionTokens(store *tokenStore, clock adapter.Clock) adapter.TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:             "unit-test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	}, store, clock)
}

func TestSessionTokens_PairRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore()
	clock := &stubClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := newSessionTokens(store, clock)
	subject := adapter.TokenSubject{UserID: uuid.New(), Email: "ana@example.com", Timezone: "Europe/Lisbon"}

	pair, err := svc.GenerateTokenPair(ctx, subject, false)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, subject.UserID, claims.UserID)
	assert.Equal(t, "Europe/Lisbon", claims.Timezone)

	_, err = svc.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, errWrongKind)
	_, err = svc.ValidateRefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, errWrongKind)

	ok, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, ok)

	stored := store.sessions[digest(pair.RefreshToken)]
	assert.Equal(t, clock.now.Add(24*time.Hour), stored.ExpiresAt)

	clock.now = clock.now.Add(25 * time.Hour)
	ok, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, ok, "stored session expiry follows the clock")
}

func TestSessionTokens_RememberMeExtendsRefresh(t *testing.T) {
	store := newTokenStore()
	clock := &stubClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := newSessionTokens(store, clock)

	pair, err := svc.GenerateTokenPair(context.Background(), adapter.TokenSubject{UserID: uuid.New()}, true)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(rememberMeLifetime), store.sessions[digest(pair.RefreshToken)].ExpiresAt)
}

func TestSessionTokens_Revocation(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore()
	svc := newSessionTokens(store, &stubClock{now: time.Now()})
	subject := adapter.TokenSubject{UserID: uuid.New()}

	first, err := svc.GenerateTokenPair(ctx, subject, false)
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(ctx, subject, false)
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateRefreshToken(ctx, first.RefreshToken))
	ok, _ := svc.IsRefreshTokenValid(ctx, first.RefreshToken)
	assert.False(t, ok)
	ok, _ = svc.IsRefreshTokenValid(ctx, second.RefreshToken)
	assert.True(t, ok)

	require.NoError(t, svc.InvalidateAllUserTokens(ctx, subject.UserID))
	ok, _ = svc.IsRefreshTokenValid(ctx, second.RefreshToken)
	assert.False(t, ok)
}

func TestSessionTokens_RejectsForeignTokens(t *testing.T) {
	svc := newSessionTokens(newTokenStore(), &stubClock{now: time.Now()})

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: uuid.NewString(),
		Kind:   kindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(context.Background(), signed)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{Kind: kindAccess})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(context.Background(), unsigned)
	assert.Error(t, err)
}

func TestResetTokens_SingleUse(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore()
	clock := &stubClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewPasswordResetTokenService(store, clock)
	userID := uuid.New()

	issued, err := svc.GenerateResetToken(ctx, userID, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, issued.Token, 64)
	assert.Equal(t, clock.now.Add(resetLifetime), issued.ExpiresAt)
	assert.NotContains(t, store.resets, issued.Token, "only the digest is stored")

	found, err := svc.ValidateResetToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)

	require.NoError(t, svc.InvalidateResetToken(ctx, issued.Token))
	assert.ErrorIs(t, svc.InvalidateResetToken(ctx, issued.Token), domainerror.ErrInvalidResetToken)
	_, err = svc.ValidateResetToken(ctx, issued.Token)
	assert.ErrorIs(t, err, domainerror.ErrInvalidResetToken)
}
