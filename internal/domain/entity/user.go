// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is assigned to users who never chose one.
const DefaultTimezone = "UTC"

// User represents a user in the LifeScope system.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	Timezone           string
	EmailNotifications bool
	DailyReminders     bool
	TermsAcceptedAt    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates an account that accepted the terms at signup. New accounts
// get email notifications and no daily reminders.
func NewUser(email, name, passwordHash string, signup time.Time) *User {
	signup = signup.UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		Timezone:           DefaultTimezone,
		EmailNotifications: true,
		TermsAcceptedAt:    signup,
		CreatedAt:          signup,
		UpdatedAt:          signup,
	}
}

// Location resolves the user's timezone, falling back to UTC when the stored
// name is empty or unknown to the tz database.
func (u *User) Location() *time.Location {
	return LoadLocation(u.Timezone)
}

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsValidTimezone reports whether name is a loadable IANA zone.
func IsValidTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
