package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// OpenAIService implements adapter.AIService using the OpenAI chat API or any
// compatible endpoint set through OPENAI_BASE_URL.
type OpenAIService struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	configured  bool
}

// NewOpenAIService creates a new OpenAI service instance.
func NewOpenAIService(cfg config.AIConfig) *OpenAIService {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	model := cfg.OpenAIModel
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("OPENAI_MODEL not set, defaulting to gpt-4o-mini")
	}

	return &OpenAIService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.RequestTimeout,
		configured:  cfg.OpenAIAPIKey != "",
	}
}

// IsAvailable checks if the OpenAI service is properly configured.
func (s *OpenAIService) IsAvailable() bool {
	return s.configured
}

// Name identifies the provider.
func (s *OpenAIService) Name() string {
	return "openai"
}

// Complete sends the conversation as a chat completion and returns the reply.
func (s *OpenAIService) Complete(ctx context.Context, request *adapter.AIRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("openai service is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(request.Messages)+1)
	if request.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: request.System,
		})
	}
	for _, msg := range request.Messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == entity.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: s.temperature,
	}
	if request.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	slog.Debug("Generating text via OpenAI", "model", s.model, "messages", len(messages))
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if request.JSON {
		text = cleanJSON(text)
	}
	return text, nil
}
