package middleware

import (
	"errors"
	"net/http"

	"powerup/services/trainer"
	"powerup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrainerMiddleware maps the authenticated account onto the trainer profile it
// owns. Requests from accounts without one are refused.
func TrainerMiddleware(trainerSvc trainer.TrainerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := trainerSvc.ResolveByUser(c.Request.Context(), c.GetString(CtxUserID))
		if err != nil {
			if errors.Is(err, utils.ErrForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Trainer account required"})
				return
			}
			zap.L().Error("[TrainerMiddleware] trainer lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve trainer"})
			return
		}
		c.Set(CtxTrainerID, t.ID)
		c.Next()
	}
}
