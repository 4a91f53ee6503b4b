package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// AIRequest is a single completion request to a generative provider.
type AIRequest struct {
	System   string
	Messages []entity.ChatMessage
	// JSON asks the provider for a bare JSON document instead of prose.
	JSON bool
}

// AIService defines the interface for generative AI providers.
type AIService interface {
	// Complete returns the provider's reply to the conversation in request.
	Complete(ctx context.Context, request *AIRequest) (string, error)

	// IsAvailable checks if the AI service is properly configured.
	IsAvailable() bool

	// Name identifies the provider, for example "gemini".
	Name() string
}

// ReportCache stores generated life reports per user and day.
type ReportCache interface {
	// Get returns the cached report, or nil when there is none.
	Get(ctx context.Context, userID uuid.UUID, day string) (*entity.LifeReport, error)

	// Set stores report for ttl.
	Set(ctx context.Context, userID uuid.UUID, day string, report *entity.LifeReport, ttl time.Duration) error
}
