package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/logger"
	"github.com/propmanager/backend/internal/interfaces/http/dto"
)

// RoleLookup reads a user's current role
type RoleLookup interface {
	GetRole(ctx context.Context, id uuid.UUID) (identity.Role, error)
}

// RequireRole re-reads the caller's role from storage on every request so
// demotions take effect before the token expires.
func RequireRole(users RoleLookup, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			abortRole(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		role, err := users.GetRole(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortRole(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "User not found")
				return
			}
			logger.GetGinLogger(c).Error("Failed to load user role", zap.Error(err))
			abortRole(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		if !slices.Contains(roles, role) {
			abortRole(c, http.StatusForbidden, dto.ErrCodeForbidden, fmt.Sprintf(
				"Access denied. Required role(s): %s. Your role: %s", identity.JoinRoles(roles), role))
			return
		}

		c.Set(JWTRoleKey, role)
		c.Next()
	}
}

// RequireAdmin is RequireRole for the admin role
func RequireAdmin(users RoleLookup) gin.HandlerFunc {
	return RequireRole(users, identity.RoleAdmin)
}

func abortRole(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
