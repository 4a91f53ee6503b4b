package ai

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeAI struct {
	replies  []string
	err      error
	disabled bool
	requests []*adapter.AIRequest
}

func (f *fakeAI) Complete(_ context.Context, request *adapter.AIRequest) (string, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeAI) IsAvailable() bool { return !f.disabled }

func (f *fakeAI) Name() string { return "fake" }

type memoryCache struct {
	reports map[string]*entity.LifeReport
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{reports: map[string]*entity.LifeReport{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, day string) (*entity.LifeReport, error) {
	return c.reports[userID.String()+day], nil
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, day string, report *entity.LifeReport, ttl time.Duration) error {
	c.reports[userID.String()+day] = report
	c.ttls[userID.String()+day] = ttl
	return nil
}

type stubGoals struct {
	adapter.GoalRepository
	goals   []*entity.Goal
	listErr error
}

func (s *stubGoals) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	for _, g := range s.goals {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domainerror.ErrGoalNotFound
}

func (s *stubGoals) FindByUserID(_ context.Context, userID uuid.UUID, _ adapter.GoalFilter) ([]*entity.Goal, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*entity.Goal
	for _, g := range s.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubActivities struct {
	adapter.ActivityRepository
	byGoal map[uuid.UUID][]*entity.Activity
}

func (s *stubActivities) FindByGoalID(_ context.Context, goalID uuid.UUID) ([]*entity.Activity, error) {
	return s.byGoal[goalID], nil
}

func (s *stubActivities) FindByGoalIDs(_ context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Activity, error) {
	out := make(map[uuid.UUID][]*entity.Activity, len(goalIDs))
	for _, id := range goalIDs {
		out[id] = s.byGoal[id]
	}
	return out, nil
}

type stubNutrition struct {
	adapter.NutritionRepository
	entries []*entity.NutritionEntry
}

func (s *stubNutrition) FindByUserAndRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.NutritionEntry, error) {
	var out []*entity.NutritionEntry
	for _, e := range s.entries {
		if e.UserID == userID && !e.ConsumedAt.Before(from) && e.ConsumedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubTransactions struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
}

func (s *stubTransactions) FindByDateRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID && !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}
