package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Category    string
	Priority    *entity.GoalPriority // Optional, defaults to Medium
	Deadline    *time.Time
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository, clock adapter.Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the goal creation. New goals have no activities, so they
// start at zero progress and Not Started.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	priority := entity.GoalPriorityMedium
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		priority = *input.Priority
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.UserID, input.Category)
	if err != nil {
		return nil, err
	}

	goal := entity.NewGoal(
		input.UserID,
		title,
		strings.TrimSpace(input.Description),
		category,
		priority,
		dateOnly(input.Deadline),
		uc.clock.Now(),
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
