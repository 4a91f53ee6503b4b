// Package email queues LifeScope's transactional email and delivers it through Resend.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/email/templates"
)

// Delivery outcomes reported to a DeliveryRecorder.
const (
	OutcomeSent   = "sent"
	OutcomeRetry  = "retry"
	OutcomeFailed = "failed"
)

// DeliveryRecorder counts delivery attempts.
type DeliveryRecorder interface {
	EmailProcessed(template, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) EmailProcessed(string, string) {}

// Worker drains the email queue on a fixed interval.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	clock        adapter.Clock
	recorder     DeliveryRecorder
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new email worker. A nil recorder disables counting.
func NewWorker(
	queue adapter.EmailQueueRepository,
	sender adapter.EmailSender,
	renderer *templates.Renderer,
	clock adapter.Clock,
	recorder DeliveryRecorder,
	cfg WorkerConfig,
) *Worker {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	defaults := DefaultWorkerConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		clock:        clock,
		recorder:     recorder,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
	}
}

// Start drains the queue until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Drain(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain claims one batch of due jobs and attempts each. It returns how
// many were handed to the provider.
func (w *Worker) Drain(ctx context.Context) int {
	jobs, err := w.queue.ClaimDue(ctx, w.clock.Now(), w.batchSize)
	if err != nil {
		slog.Error("failed to claim due emails", "error", err)
	}

	sent := 0
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		if w.deliver(ctx, job) {
			sent++
		}
	}
	return sent
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) bool {
	logger := slog.With("job_id", job.ID, "template", job.TemplateType)

	msg, err := w.render(job)
	if err == nil {
		var result *adapter.SendReceipt
		result, err = w.sender.Send(ctx, adapter.OutgoingEmail{
			To:      job.RecipientEmail,
			Name:    job.RecipientName,
			Subject: job.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		})
		if err == nil {
			job.MarkSent(result.ProviderID, w.clock.Now())
			w.save(ctx, job)
			w.recorder.EmailProcessed(string(job.TemplateType), OutcomeSent)
			logger.Info("email sent", "provider_id", result.ProviderID)
			return true
		}
	}

	job.MarkFailed(err, domainerror.IsPermanentEmailFailure(err), w.clock.Now())
	w.save(ctx, job)

	if job.Status == entity.EmailStatusFailed {
		w.recorder.EmailProcessed(string(job.TemplateType), OutcomeFailed)
		logger.Warn("email abandoned", "attempts", job.Attempts, "error", err)
	} else {
		w.recorder.EmailProcessed(string(job.TemplateType), OutcomeRetry)
		logger.Info("email rescheduled", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt, "error", err)
	}
	return false
}

func (w *Worker) save(ctx context.Context, job *entity.EmailJob) {
	if err := w.queue.Update(ctx, job); err != nil {
		slog.Error("failed to save email job", "job_id", job.ID, "status", job.Status, "error", err)
	}
}

// render builds the template payload from the job's stored data.
func (w *Worker) render(job *entity.EmailJob) (templates.Message, error) {
	var data any
	switch job.TemplateType {
	case entity.TemplatePasswordReset:
		data = templates.PasswordResetData{
			UserName:  stringField(job.TemplateData, "user_name"),
			ResetURL:  stringField(job.TemplateData, "reset_url"),
			ExpiresIn: stringField(job.TemplateData, "expires_in"),
		}
	case entity.TemplateWelcome:
		data = templates.WelcomeData{
			UserName: stringField(job.TemplateData, "user_name"),
			AppURL:   stringField(job.TemplateData, "app_url"),
		}
	case entity.TemplateGoalCompleted:
		data = templates.GoalCompletedData{
			UserName:      stringField(job.TemplateData, "user_name"),
			GoalTitle:     stringField(job.TemplateData, "goal_title"),
			ActivityCount: intField(job.TemplateData, "activity_count"),
			GoalURL:       stringField(job.TemplateData, "goal_url"),
		}
	default:
		return templates.Message{}, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template "+string(job.TemplateType),
			domainerror.ErrInvalidTemplate,
		)
	}

	msg, err := w.renderer.Render(string(job.TemplateType), data)
	if err != nil {
		return templates.Message{}, domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, "template failed to render", err)
	}
	return msg, nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// intField reads a number that may have round-tripped through JSON.
func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
