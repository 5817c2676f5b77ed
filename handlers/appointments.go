package handlers

import (
	"context"
	"net/http"
	"strings"

	"powerup/models"
	"powerup/services/booking"
	"powerup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves both sides of the appointment lifecycle.
type BookingHandler struct {
	Service booking.BookingService
}

func (h *BookingHandler) Book(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	req.UserID = userID(c)

	appt, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment requested", "appointment": appt})
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	appts, err := h.Service.MyBookings(c.Request.Context(), userID(c))
	if err != nil {
		utils.RespondError(c, "Failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *BookingHandler) RejectedToday(c *gin.Context) {
	appts, err := h.Service.RejectedToday(c.Request.Context(), userID(c))
	if err != nil {
		utils.RespondError(c, "Failed to list rejected appointments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *BookingHandler) Rate(c *gin.Context) {
	var req models.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	rating, err := h.Service.Rate(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, "Failed to rate appointment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

// statusFilter reads ?status=awaiting,accepted (names or codes). It writes
// the 400 itself and reports false on a bad value.
func statusFilter(c *gin.Context) ([]models.AppointmentStatus, bool) {
	var statuses []models.AppointmentStatus
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := models.ParseStatus(part)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter", "message": err.Error()})
				return nil, false
			}
			statuses = append(statuses, st)
		}
	}
	return statuses, true
}

func (h *BookingHandler) TrainerAppointments(c *gin.Context) {
	statuses, ok := statusFilter(c)
	if !ok {
		return
	}

	appts, err := h.Service.TrainerAppointments(c.Request.Context(), trainerID(c), statuses...)
	if err != nil {
		utils.RespondError(c, "Failed to list appointments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *BookingHandler) Accept(c *gin.Context) {
	h.resolve(c, "accept", h.Service.Accept)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.resolve(c, "reject", h.Service.Reject)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.resolve(c, "cancel", h.Service.Cancel)
}

type transitionFunc func(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error)

func (h *BookingHandler) resolve(c *gin.Context, action string, fn transitionFunc) {
	appt, err := fn(c.Request.Context(), trainerID(c), c.Param("id"))
	if err != nil {
		utils.GetLogger().Debug("[BookingHandler] transition refused",
			zap.String("action", action), zap.String("appointmentID", c.Param("id")), zap.Error(err))
		utils.RespondError(c, "Failed to "+action+" appointment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
