// Package model defines database models for persistence layer.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// NotificationSettings are the per-account mail switches.
type NotificationSettings struct {
	EmailNotifications bool `gorm:"not null;default:true"`
	DailyReminders     bool `gorm:"not null;default:false"`
}

// UserModel is an account row. Email is stored lowercased, which is what
// the unique index and every lookup compare.
type UserModel struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Email           string               `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name            string               `gorm:"type:varchar(100);not null"`
	PasswordHash    string               `gorm:"type:varchar(255);not null"`
	Timezone        string               `gorm:"type:varchar(64);not null;default:'UTC'"`
	Notifications   NotificationSettings `gorm:"embedded"`
	TermsAcceptedAt time.Time            `gorm:"not null"`
	CreatedAt       time.Time            `gorm:"not null"`
	UpdatedAt       time.Time            `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		PasswordHash:       m.PasswordHash,
		Timezone:           m.Timezone,
		EmailNotifications: m.Notifications.EmailNotifications,
		DailyReminders:     m.Notifications.DailyReminders,
		TermsAcceptedAt:    m.TermsAcceptedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func UserFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Timezone:     u.Timezone,
		Notifications: NotificationSettings{
			EmailNotifications: u.EmailNotifications,
			DailyReminders:     u.DailyReminders,
		},
		TermsAcceptedAt: u.TermsAcceptedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
