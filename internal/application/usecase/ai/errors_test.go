package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainerror "github.com/lifescope/backend/internal/domain/error"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.AIErrorCode
		expectRetry  bool
	}{
		// Timeout/cancellation errors
		{"context deadline exceeded", context.DeadlineExceeded, domainerror.ErrCodeAITimeout, true},
		{"wrapped context canceled", fmt.Errorf("call: %w", context.Canceled), domainerror.ErrCodeAITimeout, true},
		// Rate limiting errors
		{"rate limit error", errors.New("rate limit exceeded"), domainerror.ErrCodeAIRateLimited, true},
		{"quota error", errors.New("quota exceeded"), domainerror.ErrCodeAIRateLimited, true},
		{"429 status code error", errors.New("error, status code: 429"), domainerror.ErrCodeAIRateLimited, true},
		{"resource exhausted error", errors.New("Resource Exhausted"), domainerror.ErrCodeAIRateLimited, true},
		// Authentication errors
		{"401 unauthorized", errors.New("401 unauthorized"), domainerror.ErrCodeAIAuthFailed, false},
		{"invalid gemini key", errors.New("API key not valid. Please pass a valid API key."), domainerror.ErrCodeAIAuthFailed, false},
		// Network errors
		{"dial failure", errors.New("dial tcp: lookup api.openai.com: no such host"), domainerror.ErrCodeAIProviderDown, true},
		{"503", errors.New("status 503 service unavailable"), domainerror.ErrCodeAIProviderDown, true},
		// Parse errors
		{"invalid response sentinel", fmt.Errorf("%w: bad", domainerror.ErrInvalidAIResponse), domainerror.ErrCodeAIParseFailed, true},
		{"json error", errors.New("invalid character 'x' looking for beginning of JSON value"), domainerror.ErrCodeAIParseFailed, true},
		// Everything else
		{"unknown", errors.New("something odd"), domainerror.ErrCodeAIUnknown, true},
		{"unconfigured", domainerror.ErrAIUnavailable, domainerror.ErrCodeAIUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.err)
			if result.Code != tt.expectedCode {
				t.Errorf("classifyError(%v).Code = %s, want %s", tt.err, result.Code, tt.expectedCode)
			}
			if result.Retryable != tt.expectRetry {
				t.Errorf("classifyError(%v).Retryable = %v, want %v", tt.err, result.Retryable, tt.expectRetry)
			}
			if result.Message == "" {
				t.Error("classifyError() returned an empty message")
			}
		})
	}
}

func TestClassifyError_KeepsAIError(t *testing.T) {
	original := domainerror.NewAIError(domainerror.ErrCodeChatMessageRequired, "message is required", false, nil)
	if got := classifyError(fmt.Errorf("wrapped: %w", original)); got != original {
		t.Errorf("classifyError() = %v, want the original AIError", got)
	}
}
