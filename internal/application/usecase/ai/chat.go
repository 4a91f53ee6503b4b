// Package ai contains the AI assistant use cases: chat, life report and
// goal activity suggestions.
package ai

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

const (
	// MaxChatMessageLength is the maximum allowed length of one chat message.
	MaxChatMessageLength = 4000
	// MaxChatHistory is the maximum number of earlier turns sent with a message.
	MaxChatHistory = 20
)

// ChatInput represents the input for a chat turn.
type ChatInput struct {
	UserID  uuid.UUID
	Message string
	History []entity.ChatMessage
}

// ChatOutput represents the assistant's reply.
type ChatOutput struct {
	Reply    string
	Provider string
}

// ChatUseCase answers a chat message.
type ChatUseCase struct {
	aiService adapter.AIService
	prompts   *Prompts
	clock     adapter.Clock
}

// NewChatUseCase creates a new ChatUseCase instance.
func NewChatUseCase(aiService adapter.AIService, prompts *Prompts, clock adapter.Clock) *ChatUseCase {
	return &ChatUseCase{
		aiService: aiService,
		prompts:   prompts,
		clock:     clock,
	}
}

// Execute validates the conversation and forwards it to the provider.
func (uc *ChatUseCase) Execute(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	message, err := validateChatMessage(input.Message)
	if err != nil {
		return nil, err
	}
	if err := validateHistory(input.History); err != nil {
		return nil, err
	}

	if !uc.aiService.IsAvailable() {
		return nil, unavailableError()
	}

	today := uc.clock.Now().In(adapter.LocationFromContext(ctx)).Format(time.DateOnly)
	system, _, err := uc.prompts.Render(PromptChat, map[string]any{"Today": today})
	if err != nil {
		return nil, err
	}

	messages := make([]entity.ChatMessage, 0, len(input.History)+1)
	for _, m := range input.History {
		messages = append(messages, entity.ChatMessage{Role: m.Role, Content: strings.TrimSpace(m.Content)})
	}
	messages = append(messages, entity.ChatMessage{Role: entity.ChatRoleUser, Content: message})

	reply, err := uc.aiService.Complete(ctx, &adapter.AIRequest{
		System:   system,
		Messages: messages,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	return &ChatOutput{
		Reply:    strings.TrimSpace(reply),
		Provider: uc.aiService.Name(),
	}, nil
}

func validateChatMessage(raw string) (string, error) {
	message := strings.TrimSpace(raw)
	if message == "" {
		return "", domainerror.NewAIError(
			domainerror.ErrCodeChatMessageRequired,
			"message is required",
			false,
			domainerror.ErrChatMessageRequired,
		)
	}
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		return "", domainerror.NewAIError(
			domainerror.ErrCodeChatMessageTooLong,
			"message must be at most 4000 characters",
			false,
			domainerror.ErrChatMessageTooLong,
		)
	}
	return message, nil
}

func validateHistory(history []entity.ChatMessage) error {
	invalid := func(message string) error {
		return domainerror.NewAIError(
			domainerror.ErrCodeInvalidChatHistory,
			message,
			false,
			domainerror.ErrInvalidChatHistory,
		)
	}

	if len(history) > MaxChatHistory {
		return invalid("history must have at most 20 messages")
	}
	for _, m := range history {
		if !m.Role.IsValid() {
			return invalid("history roles must be user or assistant")
		}
		if strings.TrimSpace(m.Content) == "" || utf8.RuneCountInString(m.Content) > MaxChatMessageLength {
			return invalid("history messages must be 1 to 4000 characters")
		}
	}
	return nil
}
