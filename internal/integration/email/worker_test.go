package email

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/email/templates"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

type memoryQueue struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.EmailJob
	keys map[string]bool
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.EmailJob), keys: make(map[string]bool)}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if job.DedupeKey != "" {
		if q.keys[job.DedupeKey] {
			return domainerror.ErrDuplicateEmailJob
		}
		q.keys[job.DedupeKey] = true
	}
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) ClaimDue(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.IsDue(now) && len(out) < limit {
			j.Status = entity.EmailStatusProcessing
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ScheduledAt.Before(out[b].ScheduledAt) })
	return out, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) ListByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.RecipientEmail == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) PurgeFinished(context.Context, time.Time) (int64, error) { return 0, nil }

type recordingSender struct {
	sent []adapter.OutgoingEmail
	err  error
}

func (s *recordingSender) Send(_ context.Context, input adapter.OutgoingEmail) (*adapter.SendReceipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendReceipt{ProviderID: "re_1"}, nil
}

type countingRecorder struct {
	outcomes map[string]int
}

func (r *countingRecorder) EmailProcessed(_, outcome string) {
	if r.outcomes == nil {
		r.outcomes = map[string]int{}
	}
	r.outcomes[outcome]++
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender adapter.EmailSender, clock *testClock, recorder DeliveryRecorder) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, clock, recorder, WorkerConfig{})
}

func TestWorker_SendsQueuedWelcome(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	queue := newMemoryQueue()
	sender := &recordingSender{}
	recorder := &countingRecorder{}

	svc := NewService(queue, clock, "https://lifescope.test")
	require.NoError(t, svc.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{To: adapter.Recipient{UserID: uuid.New(), Email: "ana@example.com", Name: "Ana"}}))

	assert.Equal(t, 1, newTestWorker(t, queue, sender, clock, recorder).Drain(ctx))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@example.com", sender.sent[0].To)
	assert.Equal(t, "Welcome to LifeScope", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Text, "https://lifescope.test")

	jobs, _ := queue.ListByRecipient(ctx, "ana@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.EmailStatusSent, jobs[0].Status)
	assert.Equal(t, "re_1", jobs[0].ProviderID)
	assert.Equal(t, 1, recorder.outcomes[OutcomeSent])
}

func TestWorker_PermanentFailureStopsRetries(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	queue := newMemoryQueue()
	sender := &recordingSender{err: domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "rejected", errors.New("422"))}
	recorder := &countingRecorder{}

	svc := NewService(queue, clock, "")
	require.NoError(t, svc.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		To:        adapter.Recipient{Email: "bo@example.com"},
		ResetURL:  "https://x/reset",
		ExpiresIn: "1 hour",
	}))

	assert.Equal(t, 0, newTestWorker(t, queue, sender, clock, recorder).Drain(ctx))

	jobs, _ := queue.ListByRecipient(ctx, "bo@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.EmailStatusFailed, jobs[0].Status)
	assert.Equal(t, 1, jobs[0].Attempts)
	assert.Equal(t, 1, recorder.outcomes[OutcomeFailed])
}

func TestWorker_TemporaryFailureWaitsForBackoff(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	queue := newMemoryQueue()
	sender := &recordingSender{err: domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "busy", errors.New("429"))}
	worker := newTestWorker(t, queue, sender, clock, nil)

	svc := NewService(queue, clock, "")
	require.NoError(t, svc.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
		To:        adapter.Recipient{Email: "cy@example.com"},
		GoalID:    uuid.New(),
		GoalTitle: "Read 12 books",
	}))

	worker.Drain(ctx)

	jobs, _ := queue.ListByRecipient(ctx, "cy@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.EmailStatusPending, jobs[0].Status)
	assert.Equal(t, 1, jobs[0].Attempts)

	sender.err = nil
	assert.Equal(t, 0, worker.Drain(ctx), "not due before the backoff elapses")

	clock.now = clock.now.Add(time.Minute)
	assert.Equal(t, 1, worker.Drain(ctx))
	assert.Equal(t, entity.EmailStatusSent, jobs[0].Status)
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	queue := newMemoryQueue()
	job := entity.NewEmailJob("newsletter", uuid.New(), "dee@example.com", "", "News", nil, clock.now)
	require.NoError(t, queue.Create(ctx, job))

	newTestWorker(t, queue, &recordingSender{}, clock, nil).Drain(ctx)

	assert.Equal(t, entity.EmailStatusFailed, job.Status)
	assert.Contains(t, job.LastError, "unknown template")
}

func TestService_GoalCompletionIsAnnouncedOnce(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	svc := NewService(queue, newTestClock(), "")
	input := adapter.QueueGoalCompletedInput{To: adapter.Recipient{Email: "eve@example.com"}, GoalID: uuid.New(), GoalTitle: "Meditate"}

	require.NoError(t, svc.QueueGoalCompletedEmail(ctx, input))
	require.NoError(t, svc.QueueGoalCompletedEmail(ctx, input))

	jobs, _ := queue.ListByRecipient(ctx, "eve@example.com")
	assert.Len(t, jobs, 1)
}

func TestClassifySendError(t *testing.T) {
	tests := map[string]bool{
		"status 401: unauthorized":    true,
		"422 validation_error":        true,
		"[ERROR]: Invalid `to` field": true,
		"429 rate limit exceeded":     false,
		"dial tcp: i/o timeout":       false,
	}
	for msg, permanent := range tests {
		cause := errors.New(msg)
		err := classifySendError(cause)
		assert.Equal(t, permanent, domainerror.IsPermanentEmailFailure(err), msg)
		assert.ErrorIs(t, err, cause)
	}
}

func TestIntField(t *testing.T) {
	data := map[string]any{"a": 3, "b": float64(4), "c": int64(5), "d": "6"}
	assert.Equal(t, 3, intField(data, "a"))
	assert.Equal(t, 4, intField(data, "b"))
	assert.Equal(t, 5, intField(data, "c"))
	assert.Equal(t, 0, intField(data, "d"))
}
