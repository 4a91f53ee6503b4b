package error

import "errors"

// Outbound email errors.
var (
	// ErrDuplicateEmailJob is returned when a job with the same dedupe key is
	// already queued or sent.
	ErrDuplicateEmailJob = errors.New("email already queued")

	// ErrInvalidTemplate is returned for a job naming no known template.
	ErrInvalidTemplate = errors.New("invalid email template")
)

// EmailErrorCode classifies an outbound email failure.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// A permanent failure is never retried; a temporary one is rescheduled.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"
)

// EmailError classifies a send failure as permanent or temporary.
type EmailError = CodedError[EmailErrorCode]

func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return newCoded(code, message, err)
}

// IsPermanentEmailFailure reports whether err must not be retried.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	return emailErr.Code == ErrCodePermanentEmailFailure || emailErr.Code == ErrCodeInvalidTemplate
}
