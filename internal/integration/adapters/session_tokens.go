package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/integration/persistence"
)

const (
	issuer = "lifescope"

	// rememberMeLifetime is the minimum refresh lifetime when the user asks
	// to stay signed in.
	rememberMeLifetime = 30 * 24 * time.Hour
)

type tokenKind string

const (
	kindAccess  tokenKind = "access"
	kindRefresh tokenKind = "refresh"
)

var errWrongKind = errors.New("token kind mismatch")

type sessionClaims struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Timezone string    `json:"tz,omitempty"`
	Kind     tokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// sessionTokens signs HS256 access and refresh tokens. Refresh tokens are
// also stored by digest so they can be revoked. JWT expiry is checked
// against wall time by the jwt library, the stored row against the clock.
type sessionTokens struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      persistence.TokenRepository
	clock      adapter.Clock
}

func NewTokenService(cfg config.JWTConfig, store persistence.TokenRepository, clock adapter.Clock) adapter.TokenService {
	return &sessionTokens{
		key:        []byte(cfg.Secret),
		accessTTL:  cfg.AccessTokenExpiry,
		refreshTTL: cfg.RefreshTokenExpiry,
		store:      store,
		clock:      clock,
	}
}

func (s *sessionTokens) GenerateTokenPair(ctx context.Context, subject adapter.TokenSubject, rememberMe bool) (*adapter.TokenPair, error) {
	refreshTTL := s.refreshTTL
	if rememberMe {
		refreshTTL = max(refreshTTL, rememberMeLifetime)
	}

	access, err := s.sign(subject, kindAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(subject, kindRefresh, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	now := s.clock.Now()
	session := persistence.StoredToken{
		Digest:    digest(refresh),
		UserID:    subject.UserID,
		Email:     subject.Email,
		ExpiresAt: now.Add(refreshTTL),
		CreatedAt: now,
	}
	if err := s.store.SaveRefreshToken(ctx, session); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *sessionTokens) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, kindAccess)
}

func (s *sessionTokens) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, kindRefresh)
}

func (s *sessionTokens) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.store.RevokeRefreshToken(ctx, digest(token))
}

func (s *sessionTokens) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	n, err := s.store.RevokeUserRefreshTokens(ctx, userID)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "sessions revoked", "user_id", userID, "count", n)
	return nil
}

// IsRefreshTokenValid reports whether the refresh token is stored, not
// revoked and not expired at the clock's now.
func (s *sessionTokens) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return s.store.IsRefreshTokenActive(ctx, digest(token), s.clock.Now())
}

func (s *sessionTokens) sign(subject adapter.TokenSubject, kind tokenKind, ttl time.Duration) (string, error) {
	issued := time.Now().UTC()
	id := subject.UserID.String()
	claims := sessionClaims{
		UserID:   id,
		Email:    subject.Email,
		Timezone: subject.Timezone,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens minted in the same second distinct.
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *sessionTokens) verify(token string, want tokenKind) (*adapter.TokenClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse %s token: %w", want, err)
	}
	if claims.Kind != want {
		return nil, fmt.Errorf("%w: got %q, want %q", errWrongKind, claims.Kind, want)
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		Timezone:  claims.Timezone,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// digest is the hex SHA-256 under which tokens are persisted.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
