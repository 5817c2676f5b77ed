// File: handlers/bundle.go
package handlers

import (
	"context"

	"powerup/cron"
	"powerup/models"
	"powerup/services/admin"
	"powerup/services/booking"
	"powerup/services/notification"
	"powerup/services/trainer"
	"powerup/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Public        *PublicHandler
	Booking       *BookingHandler
	Trainer       *TrainerHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
	Health        *HealthHandler
}

// SweepRunner triggers one sweep on demand.
type SweepRunner interface {
	RunOnce(ctx context.Context) (models.SweepResult, error)
}

var _ SweepRunner = (*cron.Sweeper)(nil)

// NewHandlerBundle wires handlers over the services.
func NewHandlerBundle(
	adminSvc admin.AdminService,
	trainerSvc trainer.TrainerService,
	bookingSvc booking.BookingService,
	notifSvc notification.NotificationService,
	sweeper SweepRunner,
	health func() utils.HealthStatus,
) *HandlerBundle {
	return &HandlerBundle{
		Public:        &PublicHandler{Admin: adminSvc, Trainers: trainerSvc, Booking: bookingSvc},
		Booking:       &BookingHandler{Service: bookingSvc},
		Trainer:       &TrainerHandler{Service: trainerSvc},
		Notifications: &NotificationHandler{Service: notifSvc},
		Admin:         &AdminHandler{Service: adminSvc, Trainers: trainerSvc, Sweeper: sweeper},
		Health:        &HealthHandler{Status: health},
	}
}

func userID(c *gin.Context) string {
	return c.GetString("userID")
}

func trainerID(c *gin.Context) string {
	return c.GetString("trainerID")
}
