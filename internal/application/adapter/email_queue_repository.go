package adapter

import (
	"context"
	"time"

	"github.com/lifescope/backend/internal/domain/entity"
)

// EmailQueueRepository persists the outbound email queue.
type EmailQueueRepository interface {
	// Create enqueues job. A job whose DedupeKey is already taken yields
	// domainerror.ErrDuplicateEmailJob.
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue moves up to limit pending jobs due at now to processing and
	// returns them, oldest schedule first. A job is claimed by one worker only.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Update saves the outcome of a delivery attempt.
	Update(ctx context.Context, job *entity.EmailJob) error

	// ListByRecipient returns the jobs addressed to email, newest first.
	ListByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// PurgeFinished removes sent and failed jobs processed before cutoff.
	PurgeFinished(ctx context.Context, cutoff time.Time) (int64, error)
}
