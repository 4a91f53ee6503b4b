package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/domain/valueobject"
	"github.com/lifescope/backend/internal/infra/db"
	"github.com/lifescope/backend/internal/integration/persistence"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		result string
		basis  string
	}{
		{
			name:   "weekly across iso year boundary",
			args:   []string{"--frequency", "weekly", "--last", "2024-12-30T12:00:00Z", "--now", "2025-01-02T12:00:00Z"},
			result: "completed",
			basis:  "timestamp within current period",
		},
		{
			name:   "weekly rolled over",
			args:   []string{"--frequency", "Weekly", "--last", "2024-12-23T12:00:00Z", "--now", "2024-12-30T12:00:00Z"},
			result: "pending",
			basis:  "timestamp within current period",
		},
		{
			name:   "daily across midnight",
			args:   []string{"--frequency", "daily", "--last", "2025-03-10T23:59:00Z", "--now", "2025-03-11T00:01:00Z", "--completed"},
			result: "pending",
			basis:  "timestamp within current period",
		},
		{
			name:   "monthly with bare dates",
			args:   []string{"--frequency", "monthly", "--last", "2025-01-01", "--now", "2025-01-31"},
			result: "completed",
			basis:  "timestamp within current period",
		},
		{
			name:   "once ignores timestamp",
			args:   []string{"--frequency", "once", "--last", "2019-06-01", "--now", "2025-03-10", "--completed"},
			result: "completed",
			basis:  "completion flag (non-recurring)",
		},
		{
			name:   "legacy flag without timestamp",
			args:   []string{"--frequency", "daily", "--completed", "--now", "2025-03-10"},
			result: "completed",
			basis:  "completion flag (no timestamp)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"evaluate"}, tt.args...)...)
			require.NoError(t, err)
			assert.Regexp(t, `result:\s+`+tt.result+`\n`, out)
			assert.Contains(t, out, tt.basis)
		})
	}
}

func TestEvaluateCommand_PrintsPeriod(t *testing.T) {
	out, err := execute(t, "evaluate", "--frequency", "weekly", "--now", "2025-01-01T15:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-12-30 to 2025-01-05")
	assert.Contains(t, out, "never recorded")
}

func TestEvaluateCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing frequency", []string{}, "frequency"},
		{"unknown frequency", []string{"--frequency", "yearly"}, "invalid --frequency"},
		{"bad now", []string{"--frequency", "daily", "--now", "yesterday"}, "invalid --now"},
		{"bad last", []string{"--frequency", "daily", "--last", "2025-13-01"}, "invalid --last"},
		{"bad timezone", []string{"--frequency", "daily", "--tz", "Mars/Olympus"}, "invalid --tz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"evaluate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRecomputeCommand_InvalidUser(t *testing.T) {
	_, err := execute(t, "recompute-progress", "--user", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --user")
}

func TestMigrateAndRecompute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifescope.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("METRICS_ENABLED", "false")

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	// Seed a goal whose stored aggregate predates a rollover.
	database, err := db.Open(&config.DatabaseConfig{Driver: "sqlite", URL: path})
	require.NoError(t, err)

	ctx := context.Background()
	user := entity.NewUser("cli@example.com", "CLI", "hash", time.Now())
	require.NoError(t, persistence.NewUserRepository(database.DB()).Create(ctx, user))

	goal := entity.NewGoal(user.ID, "Stretch daily", "", "Health", entity.GoalPriorityMedium, nil, time.Now())
	goal.Progress = 100
	goal.Status = entity.GoalStatusCompleted
	goalRepo := persistence.NewGoalRepository(database.DB())
	require.NoError(t, goalRepo.Create(ctx, goal))

	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2)
	activity := entity.NewActivity(goal.ID, "Stretch", valueobject.FrequencyDaily, nil, time.Now())
	activity.IsCompleted = true
	activity.LastCompletedAt = &twoDaysAgo
	require.NoError(t, persistence.NewActivityRepository(database.DB()).Create(ctx, activity))
	require.NoError(t, database.Close())

	out, err = execute(t, "recompute-progress", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Stretch daily")
	assert.Contains(t, out, "checked 1 goal(s), would update 1, failed 0")

	out, err = execute(t, "recompute-progress", "--user", user.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "checked 1 goal(s), updated 1, failed 0")

	out, err = execute(t, "recompute-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "checked 1 goal(s), updated 0, failed 0")
	assert.NotContains(t, out, "Stretch daily")
}

func TestPurgeEmailsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifescope.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("METRICS_ENABLED", "false")

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	database, err := db.Open(&config.DatabaseConfig{Driver: "sqlite", URL: path})
	require.NoError(t, err)

	ctx := context.Background()
	user := entity.NewUser("mail@example.com", "Mail", "hash", time.Now())
	require.NoError(t, persistence.NewUserRepository(database.DB()).Create(ctx, user))

	queue := persistence.NewEmailQueueRepository(database.DB())
	longAgo := time.Now().AddDate(0, -2, 0)
	old := entity.NewEmailJob(entity.TemplateWelcome, user.ID, user.Email, user.Name, "Welcome", nil, longAgo)
	old.MarkSent("re_old", longAgo)
	recent := entity.NewEmailJob(entity.TemplateWelcome, user.ID, user.Email, user.Name, "Welcome", nil, time.Now())
	recent.MarkSent("re_recent", time.Now())
	pending := entity.NewEmailJob(entity.TemplatePasswordReset, user.ID, user.Email, user.Name, "Reset", nil, longAgo)
	for _, job := range []*entity.EmailJob{old, recent, pending} {
		require.NoError(t, queue.Create(ctx, job))
	}
	require.NoError(t, database.Close())

	out, err := execute(t, "purge-emails")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 1 email(s)")

	out, err = execute(t, "purge-emails", "--older-than", "1ns")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 1 email(s)")

	_, err = execute(t, "purge-emails", "--older-than", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --older-than")
}

func TestPurgeTokensCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifescope.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("METRICS_ENABLED", "false")

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	database, err := db.Open(&config.DatabaseConfig{Driver: "sqlite", URL: path})
	require.NoError(t, err)

	ctx := context.Background()
	user := entity.NewUser("tokens@example.com", "Tokens", "hash", time.Now())
	require.NoError(t, persistence.NewUserRepository(database.DB()).Create(ctx, user))

	tokens := persistence.NewTokenRepository(database.DB())
	now := time.Now()
	require.NoError(t, tokens.SaveRefreshToken(ctx, persistence.StoredToken{Digest: "stale", UserID: user.ID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, tokens.SaveRefreshToken(ctx, persistence.StoredToken{Digest: "fresh", UserID: user.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
	require.NoError(t, tokens.SaveResetToken(ctx, persistence.StoredToken{Digest: "lapsed", UserID: user.ID, Email: user.Email, ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, database.Close())

	out, err := execute(t, "purge-tokens")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 2 token(s)")

	out, err = execute(t, "purge-tokens")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 0 token(s)")
}
