package booking

import (
	"context"
	"fmt"
	"time"

	"powerup/database/repository"
	"powerup/models"
	"powerup/services/notification"

	"go.uber.org/zap"
)

// BookingService is the appointment lifecycle: booking, trainer resolution,
// the overdue sweep and the read projections built on top of them.
type BookingService interface {
	Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)

	Accept(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error)
	Reject(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error)
	Cancel(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error)

	FinalizeOverdue(ctx context.Context, now time.Time) (models.SweepResult, error)

	MyBookings(ctx context.Context, userID string) ([]models.Appointment, error)
	TrainerAppointments(ctx context.Context, trainerID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error)
	BookedSlots(ctx context.Context, trainerID string) ([]models.BookedSlot, error)
	RejectedToday(ctx context.Context, userID string) ([]models.Appointment, error)

	Rate(ctx context.Context, userID, appointmentID string, req models.RatingRequest) (*models.Rating, error)
	TrainerRatings(ctx context.Context, trainerID string) (*models.RatingSummary, []models.Rating, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Trainers     repository.TrainerRepository
	Slots        repository.SlotRepository
	Services     repository.ServiceRepository
	Appointments repository.AppointmentRepository
	Ratings      repository.RatingRepository
	Users        repository.UserRepository
	Tx           repository.TxRunner
	Notifier     notification.Sink
	Logger       *zap.Logger

	// Location decides which calendar day "today" is.
	Location *time.Location
	Now      func() time.Time
}

func NewDefaultBookingService(
	repos *repository.Repositories,
	notifier notification.Sink,
	loc *time.Location,
	logger *zap.Logger,
) (*DefaultBookingService, error) {
	if repos == nil || notifier == nil {
		return nil, fmt.Errorf("booking service initialization error: repositories or notifier is nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Trainers:     repos.Trainers,
		Slots:        repos.Slots,
		Services:     repos.Services,
		Appointments: repos.Appointments,
		Ratings:      repos.Ratings,
		Users:        repos.Users,
		Tx:           repos.Tx,
		Notifier:     notifier,
		Logger:       logger,
		Location:     loc,
		Now:          time.Now,
	}, nil
}

func (s *DefaultBookingService) now() time.Time {
	return s.Now().In(s.Location)
}
