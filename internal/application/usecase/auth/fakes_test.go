package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type memoryUsers struct {
	users     map[uuid.UUID]*entity.User
	createErr error
	updateErr error
	updates   int
	deleted   []uuid.UUID
}

func newMemoryUsers(users ...*entity.User) *memoryUsers {
	r := &memoryUsers{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memoryUsers) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *memoryUsers) Update(_ context.Context, user *entity.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	r.users[user.ID] = user
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domainerror.ErrUserNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// plainPasswords stores passwords behind a visible prefix.
type plainPasswords struct{}

func (plainPasswords) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainPasswords) VerifyPassword(hashed, password string) error {
	if hashed != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

type memoryTokens struct {
	issued   int
	claims   map[string]adapter.TokenClaims
	revoked  map[string]bool
	subjects []adapter.TokenSubject
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{claims: map[string]adapter.TokenClaims{}, revoked: map[string]bool{}}
}

func (s *memoryTokens) GenerateTokenPair(_ context.Context, subject adapter.TokenSubject, _ bool) (*adapter.TokenPair, error) {
	s.issued++
	s.subjects = append(s.subjects, subject)
	refresh := fmt.Sprintf("refresh-%d", s.issued)
	s.claims[refresh] = adapter.TokenClaims{UserID: subject.UserID, Email: subject.Email, Timezone: subject.Timezone}
	return &adapter.TokenPair{AccessToken: fmt.Sprintf("access-%d", s.issued), RefreshToken: refresh}, nil
}

func (s *memoryTokens) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (s *memoryTokens) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	c, ok := s.claims[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &c, nil
}

func (s *memoryTokens) InvalidateRefreshToken(_ context.Context, token string) error {
	s.revoked[token] = true
	return nil
}

func (s *memoryTokens) InvalidateAllUserTokens(_ context.Context, userID uuid.UUID) error {
	for token, c := range s.claims {
		if c.UserID == userID {
			s.revoked[token] = true
		}
	}
	return nil
}

func (s *memoryTokens) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	_, ok := s.claims[token]
	return ok && !s.revoked[token], nil
}

func (s *memoryTokens) live(userID uuid.UUID) int {
	n := 0
	for token, c := range s.claims {
		if c.UserID == userID && !s.revoked[token] {
			n++
		}
	}
	return n
}

type memoryResetTokens struct {
	tokens      map[string]*adapter.PasswordResetToken
	invalidated []string
	lifetime    time.Duration
	clock       adapter.Clock
}

func newMemoryResetTokens(clock adapter.Clock) *memoryResetTokens {
	return &memoryResetTokens{tokens: map[string]*adapter.PasswordResetToken{}, lifetime: time.Hour, clock: clock}
}

func (s *memoryResetTokens) GenerateResetToken(_ context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	t := &adapter.PasswordResetToken{
		Token:     "reset-" + strings.ReplaceAll(userID.String(), "-", "")[:8],
		UserID:    userID,
		Email:     email,
		ExpiresAt: s.clock.Now().Add(s.lifetime),
	}
	s.tokens[t.Token] = t
	return t, nil
}

func (s *memoryResetTokens) ValidateResetToken(_ context.Context, token string) (*adapter.PasswordResetToken, error) {
	if t, ok := s.tokens[token]; ok {
		return t, nil
	}
	return nil, domainerror.ErrInvalidResetToken
}

// InvalidateResetToken consumes a token once. Validation does not look at
// consumption, which mimics two requests racing past the lookup.
func (s *memoryResetTokens) InvalidateResetToken(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return domainerror.ErrInvalidResetToken
	}
	for _, used := range s.invalidated {
		if used == token {
			return domainerror.ErrInvalidResetToken
		}
	}
	s.invalidated = append(s.invalidated, token)
	return nil
}

type recordingEmails struct {
	resets   []adapter.QueuePasswordResetInput
	welcomes []adapter.QueueWelcomeInput
	err      error
}

func (e *recordingEmails) QueuePasswordResetEmail(_ context.Context, input adapter.QueuePasswordResetInput) error {
	e.resets = append(e.resets, input)
	return e.err
}

func (e *recordingEmails) QueueWelcomeEmail(_ context.Context, input adapter.QueueWelcomeInput) error {
	e.welcomes = append(e.welcomes, input)
	return e.err
}

func (e *recordingEmails) QueueGoalCompletedEmail(context.Context, adapter.QueueGoalCompletedInput) error {
	return e.err
}
