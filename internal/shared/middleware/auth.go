package middleware

import (
	"net/http"
	"strings"

	apperrors "github.com/campuscollab/server/internal/shared/errors"
	"github.com/campuscollab/server/internal/shared/requestctx"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// TokenCookie is the cookie the web client stores its token in.
	TokenCookie = "token"
	// UserIDKey is the context key for user ID.
	UserIDKey = "user_id"
	// EmailKey is the context key for email.
	EmailKey = "email"
)

// Identity is the caller identity carried by a validated access token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*Identity, error)
}

// TokenValidatorFunc adapts a function to TokenValidator.
type TokenValidatorFunc func(token string) (*Identity, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (*Identity, error) {
	return f(token)
}

// Auth returns a middleware that validates access tokens taken from the
// token cookie or, failing that, the bearer header.
// On success user_id and email are set on the gin context and the user ID
// is attached to the request context.
// If optional is true, missing or invalid tokens leave the request anonymous.
func Auth(validator TokenValidator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			if !optional {
				response.AbortWithCode(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "authentication required")
				return
			}
			c.Next()
			return
		}

		identity, err := validator.ValidateToken(token)
		if err != nil || identity == nil || identity.UserID == uuid.Nil {
			if !optional {
				response.AbortWithCode(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "invalid or expired token")
				return
			}
			c.Next()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(EmailKey, identity.Email)
		c.Request = c.Request.WithContext(requestctx.WithUserID(c.Request.Context(), identity.UserID))

		c.Next()
	}
}

// RequireAuth returns a middleware that requires a valid token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, false)
}

// OptionalAuth returns a middleware that identifies the caller when a valid
// token is present.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, true)
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}
	return extractBearerToken(c)
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
}

// GetUserID returns the user ID from context.
// Returns uuid.Nil if not found.
func GetUserID(c *gin.Context) uuid.UUID {
	if val, exists := c.Get(UserIDKey); exists {
		if userID, ok := val.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}
