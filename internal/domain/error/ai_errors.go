package error

import "errors"

// AI domain errors.
var (
	// ErrAIUnavailable is returned when no AI provider is configured.
	ErrAIUnavailable = errors.New("ai service is not configured")

	// ErrChatMessageRequired is returned when a chat message is blank.
	ErrChatMessageRequired = errors.New("chat message is required")

	// ErrChatMessageTooLong is returned when a chat message exceeds the maximum length.
	ErrChatMessageTooLong = errors.New("chat message too long")

	// ErrInvalidChatHistory is returned when the history is too long or carries an unknown role.
	ErrInvalidChatHistory = errors.New("invalid chat history")

	// ErrInvalidAIResponse is returned when a provider answer cannot be decoded.
	ErrInvalidAIResponse = errors.New("invalid ai response")
)

// AIErrorCode defines error codes for AI errors.
// Format: AI-XXYYYY where XX is category and YYYY is specific error.
type AIErrorCode string

const (
	// Validation errors (01)
	ErrCodeChatMessageRequired AIErrorCode = "AI-010001"
	ErrCodeChatMessageTooLong  AIErrorCode = "AI-010002"
	ErrCodeInvalidChatHistory  AIErrorCode = "AI-010003"

	// Provider errors (02)
	ErrCodeAIUnavailable  AIErrorCode = "AI-020001"
	ErrCodeAIRateLimited  AIErrorCode = "AI-020002"
	ErrCodeAIAuthFailed   AIErrorCode = "AI-020003"
	ErrCodeAITimeout      AIErrorCode = "AI-020004"
	ErrCodeAIProviderDown AIErrorCode = "AI-020005"
	ErrCodeAIParseFailed  AIErrorCode = "AI-020006"
	ErrCodeAIUnknown      AIErrorCode = "AI-020007"
)

// AIError represents an AI-related error with code and retry hint.
type AIError struct {
	Code      AIErrorCode
	Message   string
	Retryable bool
	Err       error
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AIError) Unwrap() error {
	return e.Err
}

// NewAIError creates a new AIError.
func NewAIError(code AIErrorCode, message string, retryable bool, err error) *AIError {
	return &AIError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Err:       err,
	}
}
