package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/application/usecase/nutrition"
	"github.com/lifescope/backend/internal/application/usecase/transaction"
	"github.com/lifescope/backend/internal/domain/entity"
)

// reportWindowDays is the number of days of nutrition in a life report.
const reportWindowDays = 7

// LifeReportInput represents the input for a life report.
type LifeReportInput struct {
	UserID  uuid.UUID
	Refresh bool // Skip the cached report of the day
}

// LifeReportOutput represents a generated or cached life report.
type LifeReportOutput struct {
	Report *entity.LifeReport
	Cached bool
}

// LifeReportUseCase builds the daily life report.
type LifeReportUseCase struct {
	goalRepo        adapter.GoalRepository
	activityRepo    adapter.ActivityRepository
	nutritionRepo   adapter.NutritionRepository
	transactionRepo adapter.TransactionRepository
	aiService       adapter.AIService
	cache           adapter.ReportCache
	prompts         *Prompts
	clock           adapter.Clock
	cacheTTL        time.Duration
}

// NewLifeReportUseCase creates a new LifeReportUseCase instance.
// A nil cache disables caching.
func NewLifeReportUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	nutritionRepo adapter.NutritionRepository,
	transactionRepo adapter.TransactionRepository,
	aiService adapter.AIService,
	cache adapter.ReportCache,
	prompts *Prompts,
	clock adapter.Clock,
	cacheTTL time.Duration,
) *LifeReportUseCase {
	return &LifeReportUseCase{
		goalRepo:        goalRepo,
		activityRepo:    activityRepo,
		nutritionRepo:   nutritionRepo,
		transactionRepo: transactionRepo,
		aiService:       aiService,
		cache:           cache,
		prompts:         prompts,
		clock:           clock,
		cacheTTL:        cacheTTL,
	}
}

// goalDigest is the per-goal line of the report prompt.
type goalDigest struct {
	Title     string
	Category  string
	Priority  entity.GoalPriority
	Status    entity.GoalStatus
	Progress  int
	Completed int
	Total     int
	Deadline  string
}

// reportData is the template data of the life_report prompt.
type reportData struct {
	Today     string
	Goals     []goalDigest
	Nutrition []*entity.DailyNutrition
	Finance   *entity.MonthlySummary
}

type reportAnswer struct {
	Summary         string   `json:"summary"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
}

// Execute returns the report of the current day, generating it on a cache
// miss or when Refresh is set.
func (uc *LifeReportUseCase) Execute(ctx context.Context, input LifeReportInput) (*LifeReportOutput, error) {
	if !uc.aiService.IsAvailable() {
		return nil, unavailableError()
	}

	now := uc.clock.Now().In(adapter.LocationFromContext(ctx))
	day := now.Format(time.DateOnly)

	if !input.Refresh && uc.cache != nil {
		cached, err := uc.cache.Get(ctx, input.UserID, day)
		if err != nil {
			slog.Warn("life report cache read failed", "user_id", input.UserID, "error", err)
		} else if cached != nil {
			return &LifeReportOutput{Report: cached, Cached: true}, nil
		}
	}

	data, err := uc.gather(ctx, input.UserID, now)
	if err != nil {
		return nil, err
	}

	system, user, err := uc.prompts.Render(PromptLifeReport, data)
	if err != nil {
		return nil, err
	}

	raw, err := uc.aiService.Complete(ctx, &adapter.AIRequest{
		System:   system,
		Messages: []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: user}},
		JSON:     true,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	var answer reportAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, parseFailure(err)
	}
	if strings.TrimSpace(answer.Summary) == "" {
		return nil, parseFailure(fmt.Errorf("report has no summary"))
	}

	report := &entity.LifeReport{
		Summary:         strings.TrimSpace(answer.Summary),
		Highlights:      nonEmpty(answer.Highlights),
		Recommendations: nonEmpty(answer.Recommendations),
		GeneratedAt:     uc.clock.Now().UTC(),
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, input.UserID, day, report, uc.cacheTTL); err != nil {
			slog.Warn("life report cache write failed", "user_id", input.UserID, "error", err)
		}
	}

	return &LifeReportOutput{Report: report}, nil
}

// gather loads goals, the nutrition window and the month's finances concurrently.
func (uc *LifeReportUseCase) gather(ctx context.Context, userID uuid.UUID, now time.Time) (*reportData, error) {
	data := &reportData{Today: now.Format(time.DateOnly)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		goals, err := uc.goalDigests(gctx, userID, now)
		if err != nil {
			return err
		}
		data.Goals = goals
		return nil
	})

	g.Go(func() error {
		start, end := entity.DayBounds(now)
		from := start.AddDate(0, 0, -(reportWindowDays - 1))
		days, err := nutrition.RangeSummary(gctx, uc.nutritionRepo, userID, from, end)
		if err != nil {
			return err
		}
		data.Nutrition = days
		return nil
	})

	g.Go(func() error {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		summary, err := transaction.Summarize(gctx, uc.transactionRepo, userID, month)
		if err != nil {
			return err
		}
		data.Finance = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to gather report data: %w", err)
	}
	return data, nil
}

func (uc *LifeReportUseCase) goalDigests(ctx context.Context, userID uuid.UUID, now time.Time) ([]goalDigest, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, userID, adapter.GoalFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	activities, err := uc.activityRepo.FindByGoalIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	digests := make([]goalDigest, 0, len(goals))
	for _, g := range goals {
		g.Activities = activities[g.ID]
		g.Recompute(now)

		d := goalDigest{
			Title:     g.Title,
			Category:  g.Category,
			Priority:  g.Priority,
			Status:    g.Status,
			Progress:  g.Progress,
			Completed: g.CompletedCount(now),
			Total:     len(g.Activities),
		}
		if g.Deadline != nil {
			d.Deadline = g.Deadline.Format(time.DateOnly)
		}
		digests = append(digests, d)
	}
	return digests, nil
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
