package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel is a refresh token known to the server. The token itself is
// never stored, only its SHA-256 digest.
type SessionModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Digest    string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (SessionModel) TableName() string { return "sessions" }

// PasswordResetModel is an issued reset link. ConsumedAt is set on first use
// and the row is then dead.
type PasswordResetModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Digest     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Email      string    `gorm:"type:varchar(255);not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	ConsumedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
}

func (PasswordResetModel) TableName() string { return "password_resets" }
