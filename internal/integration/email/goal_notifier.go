package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

// GoalNotifier queues a congratulation email when a goal becomes Completed,
// for users who kept email notifications on.
type GoalNotifier struct {
	userRepo   adapter.UserRepository
	emails     adapter.EmailService
	appBaseURL string
}

// NewGoalNotifier creates a new GoalNotifier.
func NewGoalNotifier(userRepo adapter.UserRepository, emails adapter.EmailService, appBaseURL string) *GoalNotifier {
	return &GoalNotifier{
		userRepo:   userRepo,
		emails:     emails,
		appBaseURL: appBaseURL,
	}
}

// GoalCompleted implements adapter.GoalNotifier.
func (n *GoalNotifier) GoalCompleted(ctx context.Context, goal *entity.Goal) {
	user, err := n.userRepo.FindByID(ctx, goal.UserID)
	if err != nil {
		slog.Warn("failed to load goal owner for completion email", "goal_id", goal.ID, "error", err)
		return
	}
	if !user.EmailNotifications {
		return
	}

	err = n.emails.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
		To:            adapter.RecipientOf(user),
		GoalID:        goal.ID,
		GoalTitle:     goal.Title,
		ActivityCount: len(goal.Activities),
		GoalURL:       fmt.Sprintf("%s/goals/%s", n.appBaseURL, goal.ID),
	})
	if err != nil {
		slog.Warn("failed to queue goal completion email", "goal_id", goal.ID, "error", err)
	}
}

var _ adapter.GoalNotifier = (*GoalNotifier)(nil)
