// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"powerup/services/user"
	"powerup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID    = "userID"
	CtxRole      = "role"
	CtxTrainerID = "trainerID"
)

// JWTAuthMiddleware resolves the bearer token into the caller's identity and
// refreshes the local user record from its claims.
func JWTAuthMiddleware(userSvc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.ExtractIdentity(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if userSvc != nil {
			if err := userSvc.Sync(c.Request.Context(), *identity); err != nil {
				zap.L().Warn("[JWTAuthMiddleware] user sync failed", zap.String("userID", identity.UserID), zap.Error(err))
			}
		}

		c.Set(CtxUserID, identity.UserID)
		c.Set(CtxRole, identity.Role)
		c.Next()
	}
}

// RequireRole admits callers whose token carries one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
