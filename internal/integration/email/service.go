package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// Service turns application events into queued email jobs.
type Service struct {
	queue      adapter.EmailQueueRepository
	clock      adapter.Clock
	appBaseURL string
}

func NewService(queue adapter.EmailQueueRepository, clock adapter.Clock, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		clock:      clock,
		appBaseURL: appBaseURL,
	}
}

func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	return s.enqueue(ctx, s.job(entity.TemplatePasswordReset, input.To, "Reset your password - LifeScope", map[string]any{
		"reset_url":  input.ResetURL,
		"expires_in": input.ExpiresIn,
	}))
}

func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	appURL := input.AppURL
	if appURL == "" {
		appURL = s.appBaseURL
	}
	return s.enqueue(ctx, s.job(entity.TemplateWelcome, input.To, "Welcome to LifeScope", map[string]any{
		"app_url": appURL,
	}))
}

// QueueGoalCompletedEmail announces a goal once. Completing it again after
// an un-toggle is a no-op.
func (s *Service) QueueGoalCompletedEmail(ctx context.Context, input adapter.QueueGoalCompletedInput) error {
	job := s.job(entity.TemplateGoalCompleted, input.To, fmt.Sprintf("You completed %q - LifeScope", input.GoalTitle), map[string]any{
		"goal_title":     input.GoalTitle,
		"activity_count": input.ActivityCount,
		"goal_url":       input.GoalURL,
	})
	job.DedupeKey = string(entity.TemplateGoalCompleted) + ":" + input.GoalID.String()
	return s.enqueue(ctx, job)
}

// job builds a pending job. Every template greets the user by name, so
// user_name is always part of the data.
func (s *Service) job(template entity.EmailTemplateType, to adapter.Recipient, subject string, data map[string]any) *entity.EmailJob {
	data["user_name"] = to.Name
	return entity.NewEmailJob(template, to.UserID, to.Email, to.Name, subject, data, s.clock.Now())
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) error {
	err := s.queue.Create(ctx, job)
	if errors.Is(err, domainerror.ErrDuplicateEmailJob) {
		slog.Debug("email already queued", "template", job.TemplateType, "dedupe_key", job.DedupeKey)
		return nil
	}
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", job.TemplateType),
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
