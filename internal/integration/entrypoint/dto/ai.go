package dto

import (
	"time"

	"github.com/lifescope/backend/internal/application/usecase/ai"
	"github.com/lifescope/backend/internal/domain/entity"
)

// ChatMessageRequest is one earlier turn of a conversation.
type ChatMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=4000"`
}

// ChatRequest represents the request body for an assistant chat turn.
type ChatRequest struct {
	Message string               `json:"message" binding:"required,max=4000"`
	History []ChatMessageRequest `json:"history" binding:"omitempty,max=20,dive"`
}

// ChatResponse represents the assistant reply.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

// LifeReportQuery holds the report options.
type LifeReportQuery struct {
	Refresh bool `form:"refresh"`
}

// LifeReportResponse represents a life report.
type LifeReportResponse struct {
	Summary         string    `json:"summary"`
	Highlights      []string  `json:"highlights"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
	Cached          bool      `json:"cached"`
}

// SuggestionsQuery holds the suggestion options.
type SuggestionsQuery struct {
	Count int `form:"count" binding:"omitempty,min=1,max=10"`
}

// ActivitySuggestionResponse represents one suggested activity.
type ActivitySuggestionResponse struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Reason    string `json:"reason,omitempty"`
}

// SuggestionsResponse represents suggested activities for a goal.
type SuggestionsResponse struct {
	GoalID      string                       `json:"goal_id"`
	Suggestions []ActivitySuggestionResponse `json:"suggestions"`
}

// ToChatHistory converts request turns to domain messages.
func ToChatHistory(history []ChatMessageRequest) []entity.ChatMessage {
	out := make([]entity.ChatMessage, len(history))
	for i, m := range history {
		out[i] = entity.ChatMessage{Role: entity.ChatRole(m.Role), Content: m.Content}
	}
	return out
}

// ToLifeReportResponse converts the report use case output.
func ToLifeReportResponse(output *ai.LifeReportOutput) LifeReportResponse {
	return LifeReportResponse{
		Summary:         output.Report.Summary,
		Highlights:      nonNil(output.Report.Highlights),
		Recommendations: nonNil(output.Report.Recommendations),
		GeneratedAt:     output.Report.GeneratedAt,
		Cached:          output.Cached,
	}
}

// ToSuggestionsResponse converts the suggestion use case output.
func ToSuggestionsResponse(output *ai.SuggestActivitiesOutput) SuggestionsResponse {
	suggestions := make([]ActivitySuggestionResponse, len(output.Suggestions))
	for i, s := range output.Suggestions {
		suggestions[i] = ActivitySuggestionResponse{
			Name:      s.Name,
			Frequency: string(s.Frequency),
			Reason:    s.Reason,
		}
	}
	return SuggestionsResponse{
		GoalID:      output.GoalID.String(),
		Suggestions: suggestions,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
