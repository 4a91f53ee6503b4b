package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/activity"
	"github.com/lifescope/backend/internal/application/usecase/goal"
	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/domain/valueobject"
)

const (
	defaultSuggestionCount = 5
	maxSuggestionCount     = 10
)

// SuggestActivitiesInput represents the input for goal activity suggestions.
type SuggestActivitiesInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
	Count  int // 1..10, defaults to 5
}

// SuggestActivitiesOutput represents the suggested activities.
type SuggestActivitiesOutput struct {
	GoalID      uuid.UUID
	Suggestions []entity.ActivitySuggestion
}

// SuggestActivitiesUseCase asks the provider for new activities for a goal.
// Suggestions are not saved; clients add the ones they accept.
type SuggestActivitiesUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	aiService    adapter.AIService
	prompts      *Prompts
}

// NewSuggestActivitiesUseCase creates a new SuggestActivitiesUseCase instance.
func NewSuggestActivitiesUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	aiService adapter.AIService,
	prompts *Prompts,
) *SuggestActivitiesUseCase {
	return &SuggestActivitiesUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		aiService:    aiService,
		prompts:      prompts,
	}
}

type suggestionAnswer struct {
	Suggestions []struct {
		Name      string `json:"name"`
		Frequency string `json:"frequency"`
		Reason    string `json:"reason"`
	} `json:"suggestions"`
}

// Execute returns up to Count suggestions that do not repeat existing activities.
func (uc *SuggestActivitiesUseCase) Execute(ctx context.Context, input SuggestActivitiesInput) (*SuggestActivitiesOutput, error) {
	g, err := goal.FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !uc.aiService.IsAvailable() {
		return nil, unavailableError()
	}

	existing, err := uc.activityRepo.FindByGoalID(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	count := input.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}
	if count > maxSuggestionCount {
		count = maxSuggestionCount
	}

	names := make([]string, len(existing))
	for i, a := range existing {
		names[i] = a.Name
	}
	data := map[string]any{
		"Title":       g.Title,
		"Category":    g.Category,
		"Description": g.Description,
		"Deadline":    "",
		"Existing":    names,
		"Count":       count,
	}
	if g.Deadline != nil {
		data["Deadline"] = g.Deadline.Format(time.DateOnly)
	}

	system, user, err := uc.prompts.Render(PromptGoalSuggestions, data)
	if err != nil {
		return nil, err
	}

	raw, err := uc.aiService.Complete(ctx, &adapter.AIRequest{
		System:   system,
		Messages: []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: user}},
		JSON:     true,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	var answer suggestionAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, parseFailure(err)
	}

	seen := make(map[string]bool, len(names)+count)
	for _, n := range names {
		seen[strings.ToLower(strings.TrimSpace(n))] = true
	}

	suggestions := make([]entity.ActivitySuggestion, 0, count)
	for _, s := range answer.Suggestions {
		if len(suggestions) == count {
			break
		}
		name := strings.TrimSpace(s.Name)
		key := strings.ToLower(name)
		if name == "" || utf8.RuneCountInString(name) > activity.MaxActivityNameLength || seen[key] {
			continue
		}
		frequency, ok := valueobject.ParseFrequency(s.Frequency)
		if !ok {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, entity.ActivitySuggestion{
			Name:      name,
			Frequency: frequency,
			Reason:    strings.TrimSpace(s.Reason),
		})
	}

	return &SuggestActivitiesOutput{GoalID: g.ID, Suggestions: suggestions}, nil
}
