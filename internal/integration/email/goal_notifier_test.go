package email

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type stubUsers struct {
	adapter.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func completedGoal(userID uuid.UUID) *entity.Goal {
	g := entity.NewGoal(userID, "Run a 10k", "", "Health", entity.GoalPriorityHigh, nil, time.Now())
	g.Activities = []*entity.Activity{
		entity.NewActivity(g.ID, "Long run", "Weekly", nil, time.Now()),
		entity.NewActivity(g.ID, "Intervals", "Weekly", nil, time.Now()),
	}
	return g
}

func TestGoalNotifier_QueuesWhenEnabled(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("ana@example.com", "Ana", "hash", time.Now())
	queue := newMemoryQueue()
	notifier := NewGoalNotifier(stubUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}, NewService(queue, newTestClock(), ""), "https://lifescope.test")

	goal := completedGoal(user.ID)
	notifier.GoalCompleted(ctx, goal)

	jobs, err := queue.ListByRecipient(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, entity.TemplateGoalCompleted, jobs[0].TemplateType)
	assert.Equal(t, "Run a 10k", jobs[0].TemplateData["goal_title"])
	assert.Equal(t, 2, jobs[0].TemplateData["activity_count"])
	assert.Equal(t, "https://lifescope.test/goals/"+goal.ID.String(), jobs[0].TemplateData["goal_url"])
	assert.Equal(t, "Ana", jobs[0].TemplateData["user_name"])
	assert.Equal(t, user.ID, jobs[0].UserID)
	assert.Equal(t, "goal_completed:"+goal.ID.String(), jobs[0].DedupeKey)
}

func TestGoalNotifier_RespectsPreference(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("bo@example.com", "Bo", "hash", time.Now())
	user.EmailNotifications = false
	queue := newMemoryQueue()
	notifier := NewGoalNotifier(stubUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}, NewService(queue, newTestClock(), ""), "")

	notifier.GoalCompleted(ctx, completedGoal(user.ID))

	jobs, _ := queue.ListByRecipient(ctx, "bo@example.com")
	assert.Empty(t, jobs)
}

func TestGoalNotifier_UnknownOwnerIsIgnored(t *testing.T) {
	queue := newMemoryQueue()
	notifier := NewGoalNotifier(stubUsers{}, NewService(queue, newTestClock(), ""), "")

	assert.NotPanics(t, func() {
		notifier.GoalCompleted(context.Background(), completedGoal(uuid.New()))
	})
	assert.Empty(t, queue.jobs)
}
