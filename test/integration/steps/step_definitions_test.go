//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/integration/adapters"
	"github.com/lifescope/backend/internal/integration/persistence"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "UTC")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "UTC")
}

func (t *testContext) aUserExistsWithEmailInTimezone(email, timezone string) error {
	return t.createUser(email, "DefaultPass123!", timezone)
}

func (t *testContext) createUser(email, password, timezone string) error {
	account := entity.NewUser(email, "Test User", hashPassword(password), time.Now())
	account.Timezone = timezone
	user := model.UserFromEntity(account)
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	t.currentUserID = user.ID
	t.currentEmail = email
	return nil
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	var user model.UserModel
	if err := t.db.DbConn.Where("id = ?", t.currentUserID).First(&user).Error; err != nil {
		return fmt.Errorf("current user not found: %w", err)
	}

	tokenService := adapters.NewTokenService(config.JWTConfig{
		Secret:             testJWTSecret,
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}, persistence.NewTokenRepository(t.db.DbConn), t.timeMock)

	pair, err := tokenService.GenerateTokenPair(context.Background(), adapter.TokenSubject{
		UserID:   user.ID,
		Email:    user.Email,
		Timezone: user.Timezone,
	}, false)
	if err != nil {
		return fmt.Errorf("failed to generate tokens: %w", err)
	}

	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

// iAmLoggedInAs switches the current user, creating it when missing.
func (t *testContext) iAmLoggedInAs(email string) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		if err := t.createUser(email, "DefaultPass123!", "UTC"); err != nil {
			return err
		}
	} else {
		t.currentUserID = user.ID
		t.currentEmail = email
	}
	return t.theUserIsLoggedInWithValidTokens()
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	resets := adapters.NewPasswordResetTokenService(persistence.NewTokenRepository(t.db.DbConn), t.timeMock)
	token, err := resets.GenerateResetToken(context.Background(), user.ID, email)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}
	t.resetToken = token.Token
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) theClockAdvancesBy(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	t.timeMock.Advance(d)
	t.redis.FastForward(d)
	return nil
}

func (t *testContext) aGoalExistsInCategory(title, category string) error {
	now := t.timeMock.Now().UTC()
	goal := &model.GoalModel{
		ID:        uuid.New(),
		UserID:    t.currentUserID,
		Title:     title,
		Category:  category,
		Priority:  "Medium",
		Status:    "Not Started",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Omit("Activities").Create(goal).Error; err != nil {
		return err
	}
	t.saved["goal_id"] = goal.ID.String()
	return nil
}

// theGoalHasStoredProgress overwrites the cached aggregate without touching activities.
func (t *testContext) theGoalHasStoredProgress(progress int, status string) error {
	return t.db.DbConn.Model(&model.GoalModel{}).
		Where("id = ?", t.saved["goal_id"]).
		Updates(map[string]any{"progress": progress, "status": status}).Error
}

func (t *testContext) theGoalHasAnActivity(frequency, name string) error {
	return t.createActivity(frequency, name, nil)
}

func (t *testContext) theGoalHasACompletedActivity(frequency, name, completedAt string) error {
	at, err := time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return fmt.Errorf("invalid completion time %q: %w", completedAt, err)
	}
	return t.createActivity(frequency, name, &at)
}

func (t *testContext) createActivity(frequency, name string, completedAt *time.Time) error {
	goalID, err := uuid.Parse(t.saved["goal_id"])
	if err != nil {
		return fmt.Errorf("no goal to attach activity %q to", name)
	}

	now := t.timeMock.Now().UTC()
	activity := &model.ActivityModel{
		ID:              uuid.New(),
		GoalID:          goalID,
		Name:            name,
		Frequency:       frequency,
		IsCompleted:     completedAt != nil,
		LastCompletedAt: completedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.db.DbConn.Create(activity).Error; err != nil {
		return err
	}
	t.saved["activity_id"] = activity.ID.String()
	return nil
}

func (t *testContext) theAIProviderRepliesWith(content *godog.DocString) error {
	t.aiMock.Reply(content.Content)
	return nil
}

func (t *testContext) theAIProviderFailsWithStatus(status int) error {
	t.aiMock.Fail(status, "provider failure")
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil, "application/json")
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload, "application/json")
}

func (t *testContext) iSendARequestToWithCSV(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, t.replacePlaceholders(path), []byte(body.Content+"\n"), "text/csv")
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errNoResponse
	}
	value := lookupPath(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	for name, value := range t.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentType)

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
		raw:    string(bodyBytes),
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}
