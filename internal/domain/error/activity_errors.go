package error

import "errors"

// Activity domain errors.
var (
	// ErrActivityNotFound is returned when the activity does not exist or belongs to another goal.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityNameRequired is returned when an activity is added without a name.
	ErrActivityNameRequired = errors.New("activity name is required")

	// ErrActivityNameTooLong is returned when the activity name exceeds the maximum length.
	ErrActivityNameTooLong = errors.New("activity name too long")

	// ErrInvalidFrequency is returned when the frequency is not Daily, Weekly, Monthly or Once.
	ErrInvalidFrequency = errors.New("invalid activity frequency")

	// ErrActivityWriteFailed is returned when the activity mutation was not persisted.
	ErrActivityWriteFailed = errors.New("activity change was not saved")
)

// ActivityErrorCode defines error codes for activity errors.
// Format: ACT-XXYYYY where XX is category and YYYY is specific error.
type ActivityErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeActivityNotFound     ActivityErrorCode = "ACT-010001"
	ErrCodeActivityNameRequired ActivityErrorCode = "ACT-010002"
	ErrCodeActivityNameTooLong  ActivityErrorCode = "ACT-010003"
	ErrCodeInvalidFrequency     ActivityErrorCode = "ACT-010004"
	ErrCodeMissingActivityField ActivityErrorCode = "ACT-010005"

	// Persistence errors (02XXXX)
	ErrCodeActivityWriteFailed ActivityErrorCode = "ACT-020001"
)

// ActivityError reports a failed activity operation.
type ActivityError = CodedError[ActivityErrorCode]

func NewActivityError(code ActivityErrorCode, message string, err error) *ActivityError {
	return newCoded(code, message, err)
}
