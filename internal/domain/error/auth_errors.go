package error

import "errors"

// Account and session errors.
var (
	// ErrUserNotFound is returned when no account matches an ID or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when an email is already bound to an account.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when an email and password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a session token is malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidResetToken is returned when a password reset token cannot be redeemed.
	ErrInvalidResetToken = errors.New("invalid or expired password reset token")

	// ErrTermsNotAccepted is returned when registration omits terms acceptance.
	ErrTermsNotAccepted = errors.New("terms of service must be accepted")

	// ErrWeakPassword is returned when a password fails the strength rules.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrInvalidEmail is returned for malformed addresses.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidTimezone is returned when a timezone is not a known IANA zone.
	// Completion periods are evaluated in this zone, so it is never guessed.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrConfirmationMismatch is returned when account erasure is not confirmed.
	ErrConfirmationMismatch = errors.New("deletion not confirmed")
)

// AuthErrorCode identifies an account or session failure.
// Format: AUTH-XXYYYY where XX groups the flow and YYYY the failure.
type AuthErrorCode string

// Registration and profile (01).
const (
	ErrCodeEmailExists      AuthErrorCode = "AUTH-010001"
	ErrCodeTermsNotAccepted AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"
	ErrCodeInvalidTimezone  AuthErrorCode = "AUTH-010006"
)

// Sign in (02).
const (
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
)

// Sessions (03).
const (
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)

// Password recovery (04).
const (
	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"
)

// Account erasure (05).
const (
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"
)

// AuthError is returned by the auth use cases.
type AuthError = CodedError[AuthErrorCode]

func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return newCoded(code, message, err)
}
