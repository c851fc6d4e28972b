// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware gates protected routes on a bearer access token.
// Handlers behind it can rely on UserIDKey and UserEmailKey being set.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin handler that rejects the request unless a
// valid access token is presented.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errResp := bearerToken(c)
		if errResp != nil {
			c.JSON(http.StatusUnauthorized, *errResp)
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

// bearerToken pulls the token out of the Authorization header. A
// missing header, a non-Bearer scheme, and a bare "Bearer " each get
// their own response.
func bearerToken(c *gin.Context) (string, *dto.ErrorResponse) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", &dto.ErrorResponse{
			Error: "Authorization header is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", &dto.ErrorResponse{
			Error: "Invalid authorization header format",
			Code:  string(domainerror.ErrCodeInvalidToken),
		}
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", &dto.ErrorResponse{
			Error: "Token is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}

	return token, nil
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
