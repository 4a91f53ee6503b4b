package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email is rendered from.
type EmailTemplateType string

const (
	TemplatePasswordReset EmailTemplateType = "password_reset"
	TemplateWelcome       EmailTemplateType = "welcome"
	TemplateGoalCompleted EmailTemplateType = "goal_completed"
)

// DefaultEmailAttempts is how many sends are tried before a job fails.
const DefaultEmailAttempts = 4

// emailRetryDelays is indexed by the number of failed attempts so far.
var emailRetryDelays = []time.Duration{time.Minute, 5 * time.Minute, 30 * time.Minute}

// EmailJob is an email waiting in the outbound queue.
type EmailJob struct {
	ID uuid.UUID
	// UserID is the account the email concerns, so erasure can drop it.
	UserID         uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	// DedupeKey, when set, allows at most one job per key. Goal completion
	// emails use it so a goal toggled back to 100% is announced once.
	DedupeKey   string
	Status      EmailStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	ProviderID  string
	CreatedAt   time.Time
	ScheduledAt time.Time
	ProcessedAt *time.Time
}

// NewEmailJob creates a pending job due at now.
func NewEmailJob(templateType EmailTemplateType, userID uuid.UUID, recipientEmail, recipientName, subject string, data map[string]any, now time.Time) *EmailJob {
	now = now.UTC()
	if data == nil {
		data = map[string]any{}
	}
	return &EmailJob{
		ID:             uuid.New(),
		UserID:         userID,
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// IsDue reports whether a pending job may be sent at now.
func (e *EmailJob) IsDue(now time.Time) bool {
	return e.Status == EmailStatusPending && !e.ScheduledAt.After(now)
}

// MarkSent records a successful hand-off to the provider.
func (e *EmailJob) MarkSent(providerID string, now time.Time) {
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.Attempts++
	processed := now.UTC()
	e.ProcessedAt = &processed
}

// MarkFailed records a failed attempt. The job is retried with a growing
// delay unless the failure is permanent or attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool, now time.Time) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		processed := now.UTC()
		e.ProcessedAt = &processed
		return
	}

	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts-1 < len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.UTC().Add(delay)
}
