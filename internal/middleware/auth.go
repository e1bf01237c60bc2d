package middleware

import (
	"strings"

	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/logger"
	"socialhub_backend/pkg/apperrors"
	"socialhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const RoleKey = "role"

// AuthMiddleware validates the bearer access token and stores the caller's
// id and role in the gin context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ParseToken(tokenStr, auth.TokenTypeAccess)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "rejected access token", "error", err)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequirePermission must run after AuthMiddleware.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !auth.HasPermission(role, permission) {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated caller's id, or 0.
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return 0
	}
	id, _ := userID.(uint)
	return id
}
