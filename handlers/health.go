package handlers

import (
	"net/http"

	"powerup/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Status func() utils.HealthStatus
}

// Health reports 503 while the store is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Status()
	code := http.StatusOK
	if !status.Store {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
