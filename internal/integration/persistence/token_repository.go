package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

// StoredToken is a persisted session or reset token. Only the SHA-256 digest
// of the token is kept.
type StoredToken struct {
	Digest    string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenRepository stores refresh and password reset tokens. Every time
// comparison uses the caller's now so expiry follows the injected clock.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token StoredToken) error

	// IsRefreshTokenActive reports whether the digest exists, is not revoked
	// and has not expired at now.
	IsRefreshTokenActive(ctx context.Context, digest string, now time.Time) (bool, error)

	RevokeRefreshToken(ctx context.Context, digest string) error

	// RevokeUserRefreshTokens ends every session of a user and reports how
	// many were still open.
	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)

	SaveResetToken(ctx context.Context, token StoredToken) error

	// FindResetToken returns an unused reset token whether or not it has
	// expired, so callers can tell the two failures apart.
	FindResetToken(ctx context.Context, digest string) (*StoredToken, error)

	// ConsumeResetToken marks the token used. A token can be consumed once.
	ConsumeResetToken(ctx context.Context, digest string, now time.Time) error

	// PurgeExpired deletes tokens that expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token StoredToken) error {
	return r.db.WithContext(ctx).Create(&model.SessionModel{
		ID:        uuid.New(),
		Digest:    token.Digest,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt.UTC(),
		CreatedAt: token.CreatedAt.UTC(),
	}).Error
}

func (r *tokenRepository) sessions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.SessionModel{}).Where("revoked_at IS NULL")
}

func (r *tokenRepository) IsRefreshTokenActive(ctx context.Context, digest string, now time.Time) (bool, error) {
	var n int64
	err := r.sessions(ctx).Where("digest = ? AND expires_at > ?", digest, now.UTC()).Count(&n).Error
	return n > 0, err
}

// RevokeRefreshToken stamps the session with wall time; only its presence
// matters to IsRefreshTokenActive.
func (r *tokenRepository) RevokeRefreshToken(ctx context.Context, digest string) error {
	return r.sessions(ctx).Where("digest = ?", digest).Update("revoked_at", time.Now().UTC()).Error
}

func (r *tokenRepository) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.sessions(ctx).Where("user_id = ?", userID).Update("revoked_at", time.Now().UTC())
	return res.RowsAffected, res.Error
}

func (r *tokenRepository) SaveResetToken(ctx context.Context, token StoredToken) error {
	return r.db.WithContext(ctx).Create(&model.PasswordResetModel{
		ID:        uuid.New(),
		Digest:    token.Digest,
		UserID:    token.UserID,
		Email:     token.Email,
		ExpiresAt: token.ExpiresAt.UTC(),
		CreatedAt: token.CreatedAt.UTC(),
	}).Error
}

func (r *tokenRepository) FindResetToken(ctx context.Context, digest string) (*StoredToken, error) {
	var row model.PasswordResetModel
	err := r.db.WithContext(ctx).Where("digest = ? AND consumed_at IS NULL", digest).Take(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainerror.ErrInvalidResetToken
	case err != nil:
		return nil, err
	}
	return &StoredToken{
		Digest:    row.Digest,
		UserID:    row.UserID,
		Email:     row.Email,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ConsumeResetToken is a conditional update, so of two concurrent callers
// only one sees a changed row.
func (r *tokenRepository) ConsumeResetToken(ctx context.Context, digest string, now time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.PasswordResetModel{}).
		Where("digest = ? AND consumed_at IS NULL", digest).
		Update("consumed_at", now.UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerror.ErrInvalidResetToken
	}
	return nil
}

func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.UTC()
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := tx.Where("expires_at < ?", cutoff).Delete(&model.SessionModel{})
		if sessions.Error != nil {
			return sessions.Error
		}
		resets := tx.Where("expires_at < ? OR consumed_at IS NOT NULL", cutoff).Delete(&model.PasswordResetModel{})
		if resets.Error != nil {
			return resets.Error
		}
		purged = sessions.RowsAffected + resets.RowsAffected
		return nil
	})
	return purged, err
}
