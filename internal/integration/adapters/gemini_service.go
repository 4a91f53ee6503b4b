package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// GeminiService implements adapter.AIService using Google Gemini.
type GeminiService struct {
	apiKey      string
	modelName   string
	temperature float32
	timeout     time.Duration
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(cfg config.AIConfig) *GeminiService {
	modelName := cfg.GeminiModel
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &GeminiService{
		apiKey:      cfg.GeminiAPIKey,
		modelName:   modelName,
		temperature: cfg.Temperature,
		timeout:     cfg.RequestTimeout,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Name identifies the provider.
func (s *GeminiService) Name() string {
	return "gemini"
}

// Complete sends the conversation to Gemini and returns the reply text.
func (s *GeminiService) Complete(ctx context.Context, request *adapter.AIRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}
	if len(request.Messages) == 0 {
		return "", errors.New("gemini request has no messages")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(s.temperature)
	if request.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(request.System))
	}
	if request.JSON {
		model.ResponseMIMEType = "application/json"
	}

	// Earlier turns become the session history; the last one is sent.
	session := model.StartChat()
	last := len(request.Messages) - 1
	for _, msg := range request.Messages[:last] {
		session.History = append(session.History, &genai.Content{
			Role:  geminiRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(request.Messages[last].Content))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	if request.JSON {
		text = cleanJSON(text)
	}
	return text, nil
}

func geminiRole(role entity.ChatRole) string {
	if role == entity.ChatRoleAssistant {
		return "model"
	}
	return "user"
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return sb.String(), nil
}
