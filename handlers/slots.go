package handlers

import (
	"net/http"

	"powerup/models"
	"powerup/services/trainer"
	"powerup/utils"

	"github.com/gin-gonic/gin"
)

// TrainerHandler serves the authenticated trainer's slot registry and
// offered services.
type TrainerHandler struct {
	Service trainer.TrainerService
}

func (h *TrainerHandler) ListSlots(c *gin.Context) {
	slots, err := h.Service.ListSlots(c.Request.Context(), trainerID(c))
	if err != nil {
		utils.RespondError(c, "Failed to list slots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *TrainerHandler) CreateSlot(c *gin.Context) {
	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slot, err := h.Service.CreateSlot(c.Request.Context(), trainerID(c), req)
	if err != nil {
		utils.RespondError(c, "Failed to create slot", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

func (h *TrainerHandler) EditSlot(c *gin.Context) {
	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	slot, err := h.Service.EditSlot(c.Request.Context(), trainerID(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to update slot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

func (h *TrainerHandler) DeleteSlot(c *gin.Context) {
	if err := h.Service.DeleteSlot(c.Request.Context(), trainerID(c), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete slot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

func (h *TrainerHandler) MyServices(c *gin.Context) {
	services, err := h.Service.MyServices(c.Request.Context(), trainerID(c))
	if err != nil {
		utils.RespondError(c, "Failed to list services", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *TrainerHandler) AddService(c *gin.Context) {
	if err := h.Service.AddService(c.Request.Context(), trainerID(c), c.Param("serviceId")); err != nil {
		utils.RespondError(c, "Failed to add service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service added"})
}

func (h *TrainerHandler) RemoveService(c *gin.Context) {
	if err := h.Service.RemoveService(c.Request.Context(), trainerID(c), c.Param("serviceId")); err != nil {
		utils.RespondError(c, "Failed to remove service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service removed"})
}
