package adapters

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// NewAIService returns the provider selected by cfg.Provider.
// Without an API key a disabled service is returned so the AI endpoints
// answer with a clear error instead of failing at startup.
func NewAIService(cfg config.AIConfig) adapter.AIService {
	if cfg.APIKey() == "" {
		slog.Warn("AI provider has no API key, AI endpoints are disabled", "provider", cfg.Provider)
		return disabledAIService{provider: cfg.Provider}
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIService(cfg)
	default:
		return NewGeminiService(cfg)
	}
}

type disabledAIService struct {
	provider string
}

func (s disabledAIService) Complete(context.Context, *adapter.AIRequest) (string, error) {
	return "", domainerror.ErrAIUnavailable
}

func (s disabledAIService) IsAvailable() bool { return false }

func (s disabledAIService) Name() string { return s.provider }

// cleanJSON removes markdown code fences some models wrap around JSON answers.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
