package booking

import (
	"context"
	"time"

	"powerup/models"
	"powerup/utils"
)

// MyBookings lists the user's appointments, newest date first.
func (s *DefaultBookingService) MyBookings(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.Appointments.ListByUser(ctx, userID)
}

// TrainerAppointments lists the trainer's appointments in calendar order,
// optionally narrowed to some statuses.
func (s *DefaultBookingService) TrainerAppointments(ctx context.Context, trainerID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	return s.Appointments.ListByTrainer(ctx, trainerID, statuses...)
}

// BookedSlots returns the (slot, date) pairs from today on that already hold
// an accepted appointment.
func (s *DefaultBookingService) BookedSlots(ctx context.Context, trainerID string) ([]models.BookedSlot, error) {
	if _, err := s.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	return s.Appointments.ListBookedByTrainer(ctx, trainerID, s.now().Format(models.DateLayout))
}

// RejectedToday lists the user's appointments rejected since local midnight.
func (s *DefaultBookingService) RejectedToday(ctx context.Context, userID string) ([]models.Appointment, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location)
	return s.Appointments.ListRejectedSince(ctx, userID, midnight)
}
