// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
)

// TimezoneHeader lets a client override the timezone stored on the account
// for a single request, e.g. while travelling.
const TimezoneHeader = "X-Timezone"

const (
	userIDKey   = "auth.user_id"
	timezoneKey = "auth.timezone"
)

// AuthMiddleware admits requests that carry a valid access token.
type AuthMiddleware struct {
	tokens adapter.TokenService
}

func NewAuthMiddleware(tokens adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate resolves the bearer token into a user and the timezone the
// request is evaluated in. The timezone travels on the request context so
// use cases see the same "today" as the client.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code, reason := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, code, reason)
			return
		}

		claims, err := m.tokens.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, domainerror.ErrCodeInvalidToken, "Invalid or expired token")
			return
		}

		tz := resolveTimezone(c.GetHeader(TimezoneHeader), claims.Timezone)
		c.Set(userIDKey, claims.UserID)
		c.Set(timezoneKey, tz)
		c.Request = c.Request.WithContext(
			adapter.WithLocation(c.Request.Context(), entity.LoadLocation(tz)),
		)
		c.Next()
	}
}

// bearerToken extracts the token, or explains why the header is unusable.
func bearerToken(header string) (string, domainerror.AuthErrorCode, string) {
	if header == "" {
		return "", domainerror.ErrCodeMissingToken, "Authorization header is required"
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", domainerror.ErrCodeInvalidToken, "Invalid authorization header format"
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", domainerror.ErrCodeMissingToken, "Token is required"
	}
	return token, "", ""
}

func abortUnauthorized(c *gin.Context, code domainerror.AuthErrorCode, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: reason, Code: string(code)})
}

// UserID returns the user Authenticate admitted.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Timezone returns the zone name the request is evaluated in.
func Timezone(c *gin.Context) string {
	if tz := c.GetString(timezoneKey); tz != "" {
		return tz
	}
	return entity.DefaultTimezone
}

// resolveTimezone picks the header value when it names a real zone, then the
// account timezone from the token, then UTC.
func resolveTimezone(header, claim string) string {
	if header = strings.TrimSpace(header); entity.IsValidTimezone(header) {
		return header
	}
	if entity.IsValidTimezone(claim) {
		return claim
	}
	return entity.DefaultTimezone
}
