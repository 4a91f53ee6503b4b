package entity

import (
	"time"

	"github.com/lifescope/backend/internal/domain/valueobject"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// IsValid reports whether r may appear in a client supplied history.
func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleAssistant
}

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// LifeReport is the generated overview of a user's goals, nutrition and finances.
type LifeReport struct {
	Summary         string    `json:"summary"`
	Highlights      []string  `json:"highlights"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// ActivitySuggestion is a proposed activity for a goal.
type ActivitySuggestion struct {
	Name      string
	Frequency valueobject.Frequency
	Reason    string
}
