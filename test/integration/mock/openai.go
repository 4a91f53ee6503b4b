package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

const chatCompletionsPath = "/v1/chat/completions"

// OpenAI is a fake chat completions endpoint. Every request gets the
// configured reply until it is changed; with none configured the endpoint
// answers 503.
type OpenAI struct {
	server *httptest.Server

	mu       sync.Mutex
	status   int
	reply    any
	requests []openai.ChatCompletionRequest
}

func NewOpenAI() *OpenAI {
	o := &OpenAI{}
	o.server = httptest.NewServer(http.HandlerFunc(o.serve))
	return o
}

// BaseURL is the value for the client's base URL setting.
func (o *OpenAI) BaseURL() string {
	return o.server.URL + "/v1"
}

func (o *OpenAI) Close() {
	o.server.Close()
}

// Reply answers every request with a single assistant message.
func (o *OpenAI) Reply(content string) {
	o.set(http.StatusOK, openai.ChatCompletionResponse{
		ID:      "chatcmpl-test",
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			FinishReason: openai.FinishReasonStop,
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: content,
			},
		}},
	})
}

// Fail answers every request with an API error.
func (o *OpenAI) Fail(status int, message string) {
	o.set(status, openai.ErrorResponse{Error: &openai.APIError{
		Message: message,
		Type:    "requests",
	}})
}

// Reset forgets the reply and the recorded requests.
func (o *OpenAI) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status, o.reply, o.requests = 0, nil, nil
}

// Requests returns the decoded chat requests received so far.
func (o *OpenAI) Requests() []openai.ChatCompletionRequest {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), o.requests...)
}

// Transcript joins the message contents of a request, for text assertions.
func Transcript(req openai.ChatCompletionRequest) string {
	parts := make([]string, 0, len(req.Messages))
	for _, m := range req.Messages {
		parts = append(parts, m.Role+": "+m.Content)
	}
	return strings.Join(parts, "\n")
}

func (o *OpenAI) set(status int, reply any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status, o.reply = status, reply
}

func (o *OpenAI) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != chatCompletionsPath {
		http.NotFound(w, r)
		return
	}

	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o.mu.Lock()
	o.requests = append(o.requests, req)
	status, reply := o.status, o.reply
	o.mu.Unlock()

	if reply == nil {
		status = http.StatusServiceUnavailable
		reply = openai.ErrorResponse{Error: &openai.APIError{Message: "no reply configured", Type: "server_error"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}
