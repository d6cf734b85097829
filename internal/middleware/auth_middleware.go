package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller in the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			AbortWithAPIError(c, apperrors.ErrTokenInvalid)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			AbortWithAPIError(c, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RoleRequired rejects callers whose token role differs from requiredRole.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok {
			AbortWithAPIError(c, apperrors.ErrTokenInvalid)
			return
		}

		if roleStr, _ := role.(string); roleStr != requiredRole {
			AbortWithAPIError(c, apperrors.NewForbiddenError("You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// CallerID returns the authenticated user's id, or 0 outside JWTAuth
func CallerID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
