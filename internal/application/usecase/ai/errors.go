package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// classifyError converts a provider failure into an AIError with a stable
// code and a retry hint.
func classifyError(err error) *domainerror.AIError {
	var aiErr *domainerror.AIError
	if errors.As(err, &aiErr) {
		return aiErr
	}

	if errors.Is(err, domainerror.ErrAIUnavailable) {
		return unavailableError()
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.NewAIError(domainerror.ErrCodeAITimeout,
			"the AI provider took too long to answer, try again", true, err)
	}

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return domainerror.NewAIError(domainerror.ErrCodeAIRateLimited,
			"AI request limit reached, wait a few minutes and try again", true, err)
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "api key not valid") ||
		strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "authentication") {
		return domainerror.NewAIError(domainerror.ErrCodeAIAuthFailed,
			"the AI provider rejected the configured credentials", false, err)
	}

	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return domainerror.NewAIError(domainerror.ErrCodeAIProviderDown,
			"the AI provider is temporarily unavailable", true, err)
	}

	if errors.Is(err, domainerror.ErrInvalidAIResponse) ||
		strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return domainerror.NewAIError(domainerror.ErrCodeAIParseFailed,
			"the AI answer could not be understood, try again", true, err)
	}

	return domainerror.NewAIError(domainerror.ErrCodeAIUnknown,
		"unexpected AI failure, try again", true, err)
}

func unavailableError() *domainerror.AIError {
	return domainerror.NewAIError(domainerror.ErrCodeAIUnavailable,
		"AI features are not configured", false, domainerror.ErrAIUnavailable)
}

// parseFailure wraps a decode error of a provider answer.
func parseFailure(err error) error {
	return classifyError(fmt.Errorf("%w: %w", domainerror.ErrInvalidAIResponse, err))
}
