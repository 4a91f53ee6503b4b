package activity

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeGoalRepo struct {
	goals             map[uuid.UUID]*entity.Goal
	updateProgressErr error
	progressWrites    int
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: map[uuid.UUID]*entity.Goal{}}
}

func (r *fakeGoalRepo) Create(_ context.Context, g *entity.Goal) error {
	cp := *g
	cp.Activities = nil
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGoalRepo) FindByUserID(context.Context, uuid.UUID, adapter.GoalFilter) ([]*entity.Goal, error) {
	return nil, nil
}

func (r *fakeGoalRepo) FindAll(context.Context, *uuid.UUID) ([]*entity.Goal, error) {
	return nil, nil
}

func (r *fakeGoalRepo) Update(context.Context, *entity.Goal) error { return nil }

func (r *fakeGoalRepo) UpdateProgress(_ context.Context, id uuid.UUID, progress int, status entity.GoalStatus) error {
	if r.updateProgressErr != nil {
		return r.updateProgressErr
	}
	r.progressWrites++
	r.goals[id].Progress = progress
	r.goals[id].Status = status
	return nil
}

func (r *fakeGoalRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeGoalRepo) CountByCategory(context.Context, uuid.UUID, string) (int64, error) {
	return 0, nil
}

func (r *fakeGoalRepo) RenameCategory(context.Context, uuid.UUID, string, string) error {
	return nil
}

type fakeActivityRepo struct {
	activities map[uuid.UUID]*entity.Activity
	writeErr   error
	listErr    error
	writes     int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: map[uuid.UUID]*entity.Activity{}}
}

func (r *fakeActivityRepo) Create(_ context.Context, a *entity.Activity) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes++
	cp := *a
	r.activities[a.ID] = &cp
	return nil
}

func (r *fakeActivityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Activity, error) {
	a, ok := r.activities[id]
	if !ok {
		return nil, domainerror.ErrActivityNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeActivityRepo) FindByGoalID(_ context.Context, goalID uuid.UUID) ([]*entity.Activity, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var list []*entity.Activity
	for _, a := range r.activities {
		if a.GoalID == goalID {
			cp := *a
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *fakeActivityRepo) FindByGoalIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*entity.Activity, error) {
	out := map[uuid.UUID][]*entity.Activity{}
	for _, id := range ids {
		list, err := r.FindByGoalID(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = list
	}
	return out, nil
}

func (r *fakeActivityRepo) Update(_ context.Context, a *entity.Activity) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes++
	stored, ok := r.activities[a.ID]
	if !ok {
		return domainerror.ErrActivityNotFound
	}
	stored.Name = a.Name
	stored.Frequency = a.Frequency
	stored.Deadline = a.Deadline
	return nil
}

func (r *fakeActivityRepo) UpdateCompletion(_ context.Context, id uuid.UUID, isCompleted bool, lastCompletedAt *time.Time) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes++
	stored, ok := r.activities[id]
	if !ok {
		return domainerror.ErrActivityNotFound
	}
	stored.IsCompleted = isCompleted
	stored.LastCompletedAt = lastCompletedAt
	return nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes++
	if _, ok := r.activities[id]; !ok {
		return domainerror.ErrActivityNotFound
	}
	delete(r.activities, id)
	return nil
}

type countingMetrics struct {
	toggles map[string]int
	stale   int
}

func (m *countingMetrics) ActivityToggled(result string) {
	if m.toggles == nil {
		m.toggles = map[string]int{}
	}
	m.toggles[result]++
}

func (m *countingMetrics) GoalRecomputed(entity.GoalStatus) {}

func (m *countingMetrics) GoalAggregateStale() { m.stale++ }
