// Package auth contains the account and session use cases.
package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// normalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// subjectOf builds the token identity. The timezone travels in the access
// token so every request evaluates periods in the user's calendar.
func subjectOf(user *entity.User) adapter.TokenSubject {
	return adapter.TokenSubject{
		UserID:   user.ID,
		Email:    user.Email,
		Timezone: user.Timezone,
	}
}

// invalidCredentials is shared by every path that must not reveal whether
// the account exists.
func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}

func invalidTimezone() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidTimezone,
		"timezone must be an IANA zone name",
		domainerror.ErrInvalidTimezone,
	)
}

func invalidEmail() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidEmail,
		"invalid email format",
		domainerror.ErrInvalidEmail,
	)
}

func weakPassword(err error) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeWeakPassword,
		"password does not meet minimum requirements",
		fmt.Errorf("%w: %w", domainerror.ErrWeakPassword, err),
	)
}
