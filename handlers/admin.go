package handlers

import (
	"errors"
	"net/http"

	"powerup/cron"
	"powerup/models"
	"powerup/services/admin"
	"powerup/services/trainer"
	"powerup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Service  admin.AdminService
	Trainers trainer.TrainerService
	Sweeper  SweepRunner
}

func (h *AdminHandler) CreateGym(c *gin.Context) {
	var req models.CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	gym, err := h.Service.CreateGym(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create gym", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"gym": gym})
}

func (h *AdminHandler) UpdateGym(c *gin.Context) {
	var req models.CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	gym, err := h.Service.UpdateGym(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to update gym", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gym": gym})
}

func (h *AdminHandler) DeleteGym(c *gin.Context) {
	if err := h.Service.DeleteGym(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete gym", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gym deleted"})
}

func (h *AdminHandler) ListGyms(c *gin.Context) {
	gyms, err := h.Service.ListGyms(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list gyms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	svc, err := h.Service.CreateService(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create service", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	svc, err := h.Service.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to update service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	if err := h.Service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

func (h *AdminHandler) ListServices(c *gin.Context) {
	services, err := h.Service.ListServices(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list services", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *AdminHandler) CreateTrainer(c *gin.Context) {
	var req models.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	t, err := h.Trainers.CreateTrainer(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create trainer", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trainer": t})
}

func (h *AdminHandler) UpdateTrainer(c *gin.Context) {
	var req models.UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	t, err := h.Trainers.UpdateTrainer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to update trainer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trainer": t})
}

func (h *AdminHandler) DeleteTrainer(c *gin.Context) {
	if err := h.Trainers.DeleteTrainer(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete trainer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted"})
}

// AllAppointments lists appointments across trainers, newest date first.
// It takes the same ?status= filter as the trainer view.
func (h *AdminHandler) AllAppointments(c *gin.Context) {
	statuses, ok := statusFilter(c)
	if !ok {
		return
	}
	appts, err := h.Service.AllAppointments(c.Request.Context(), statuses...)
	if err != nil {
		utils.RespondError(c, "Failed to list appointments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// RunSweep finalizes overdue appointments now instead of waiting for the schedule.
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.Sweeper.RunOnce(c.Request.Context())
	if errors.Is(err, cron.ErrSweepBusy) {
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: "A sweep is already running"})
		return
	}
	if err != nil {
		utils.GetLogger().Error("[RunSweep] sweep failed", zap.Error(err))
		utils.RespondError(c, "Sweep failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
