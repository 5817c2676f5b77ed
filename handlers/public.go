package handlers

import (
	"net/http"

	"powerup/services/admin"
	"powerup/services/booking"
	"powerup/services/trainer"
	"powerup/utils"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the browsing endpoints that need no account.
type PublicHandler struct {
	Admin    admin.AdminService
	Trainers trainer.TrainerService
	Booking  booking.BookingService
}

func (h *PublicHandler) ListGyms(c *gin.Context) {
	gyms, err := h.Admin.ListGyms(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list gyms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

// ListTrainers accepts an optional ?gymId= filter.
func (h *PublicHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.Trainers.ListTrainers(c.Request.Context(), c.Query("gymId"))
	if err != nil {
		utils.RespondError(c, "Failed to list trainers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trainers": trainers})
}

func (h *PublicHandler) GetTrainer(c *gin.Context) {
	t, err := h.Trainers.GetTrainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to fetch trainer", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *PublicHandler) TrainerSlots(c *gin.Context) {
	slots, err := h.Trainers.ListSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to list slots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// TrainerBooked lists the (slot, date) pairs already taken from today on.
func (h *PublicHandler) TrainerBooked(c *gin.Context) {
	booked, err := h.Booking.BookedSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to list booked slots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booked": booked})
}

func (h *PublicHandler) TrainerRatings(c *gin.Context) {
	summary, ratings, err := h.Booking.TrainerRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to fetch ratings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "ratings": ratings})
}
