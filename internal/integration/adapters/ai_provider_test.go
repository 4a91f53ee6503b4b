package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

func TestNewAIService(t *testing.T) {
	t.Run("without key returns disabled service", func(t *testing.T) {
		svc := NewAIService(config.AIConfig{Provider: "gemini"})
		assert.False(t, svc.IsAvailable())

		_, err := svc.Complete(context.Background(), &adapter.AIRequest{})
		assert.ErrorIs(t, err, domainerror.ErrAIUnavailable)
	})

	t.Run("selects provider", func(t *testing.T) {
		assert.Equal(t, "openai", NewAIService(config.AIConfig{Provider: "openai", OpenAIAPIKey: "sk"}).Name())
		assert.Equal(t, "gemini", NewAIService(config.AIConfig{Provider: "gemini", GeminiAPIKey: "k"}).Name())
	})
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1]`, cleanJSON("  [1] "))
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format"`
}

func TestOpenAIService_Complete(t *testing.T) {
	var received chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "` + "```json" + `{\"ok\":true}` + "```" + `"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	svc := NewOpenAIService(config.AIConfig{
		OpenAIAPIKey:  "sk-test",
		OpenAIModel:   "gpt-test",
		OpenAIBaseURL: server.URL,
	})

	reply, err := svc.Complete(context.Background(), &adapter.AIRequest{
		System: "be brief",
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleUser, Content: "hi"},
			{Role: entity.ChatRoleAssistant, Content: "hello"},
			{Role: entity.ChatRoleUser, Content: "report"},
		},
		JSON: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, reply)

	assert.Equal(t, "gpt-test", received.Model)
	require.Len(t, received.Messages, 4)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "assistant", received.Messages[2].Role)
	require.NotNil(t, received.ResponseFormat)
	assert.Equal(t, "json_object", received.ResponseFormat.Type)
}

func TestOpenAIService_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests"}}`))
	}))
	defer server.Close()

	svc := NewOpenAIService(config.AIConfig{OpenAIAPIKey: "sk-test", OpenAIBaseURL: server.URL})

	_, err := svc.Complete(context.Background(), &adapter.AIRequest{
		Messages: []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
