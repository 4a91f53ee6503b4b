package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// OutgoingEmail is a rendered message ready for the provider.
type OutgoingEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

type SendReceipt struct {
	ProviderID string
}

// EmailSender delivers one message. Failures should be domain EmailErrors
// so the worker can tell a bounce from an outage.
type EmailSender interface {
	Send(ctx context.Context, msg OutgoingEmail) (*SendReceipt, error)
}

// Recipient identifies who a queued email is for.
type Recipient struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

func RecipientOf(user *entity.User) Recipient {
	return Recipient{UserID: user.ID, Email: user.Email, Name: user.Name}
}

// EmailService queues transactional email. Delivery happens later in the
// worker, so a nil error only means the job was stored.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
	QueueWelcomeEmail(ctx context.Context, input QueueWelcomeInput) error

	// QueueGoalCompletedEmail is deduplicated per goal.
	QueueGoalCompletedEmail(ctx context.Context, input QueueGoalCompletedInput) error
}

type QueuePasswordResetInput struct {
	To        Recipient
	ResetURL  string
	ExpiresIn string
}

// QueueWelcomeInput falls back to the configured app URL when AppURL is empty.
type QueueWelcomeInput struct {
	To     Recipient
	AppURL string
}

type QueueGoalCompletedInput struct {
	To            Recipient
	GoalID        uuid.UUID
	GoalTitle     string
	ActivityCount int
	GoalURL       string
}
