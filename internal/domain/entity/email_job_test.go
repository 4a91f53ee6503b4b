package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJob_RetryBackoff(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	job := NewEmailJob(TemplateWelcome, uuid.New(), "ana@example.com", "Ana", "Hi", nil, now)
	require.True(t, job.IsDue(now))

	sendErr := errors.New("503")
	wantDelays := []time.Duration{time.Minute, 5 * time.Minute, 30 * time.Minute}
	for i, delay := range wantDelays {
		job.MarkFailed(sendErr, false, now)
		assert.Equal(t, EmailStatusPending, job.Status, "attempt %d", i+1)
		assert.Equal(t, now.Add(delay), job.ScheduledAt, "attempt %d", i+1)
		assert.False(t, job.IsDue(now))
		assert.True(t, job.IsDue(now.Add(delay)))
	}

	job.MarkFailed(sendErr, false, now)
	assert.Equal(t, EmailStatusFailed, job.Status)
	assert.Equal(t, DefaultEmailAttempts, job.Attempts)
	require.NotNil(t, job.ProcessedAt)
	assert.Equal(t, "503", job.LastError)
}

func TestEmailJob_PermanentFailureAndSend(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	rejected := NewEmailJob(TemplatePasswordReset, uuid.New(), "bo@example.com", "", "Reset", nil, now)
	rejected.MarkFailed(errors.New("422"), true, now)
	assert.Equal(t, EmailStatusFailed, rejected.Status)
	assert.Equal(t, 1, rejected.Attempts)

	sent := NewEmailJob(TemplateGoalCompleted, uuid.New(), "cy@example.com", "", "Done", nil, now)
	sent.MarkSent("re_123", now.Add(time.Second))
	assert.Equal(t, EmailStatusSent, sent.Status)
	assert.Equal(t, "re_123", sent.ProviderID)
	assert.False(t, sent.IsDue(now.Add(time.Hour)))
}
