// File: services/booking/resolve.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"powerup/database"
	"powerup/models"
	"powerup/services/notification"
	"powerup/utils"

	"go.uber.org/zap"
)

var verbs = map[models.AppointmentStatus]string{
	models.StatusAccepted:  "accepted",
	models.StatusRejected:  "rejected",
	models.StatusCancelled: "cancelled",
}

// resolve runs one trainer-initiated transition. The status write is
// conditional on from, and then runs in the same transaction as the side
// effects. A caller that loses a race gets ErrConflict.
func (s *DefaultBookingService) resolve(
	ctx context.Context,
	trainerID, id string,
	from, to models.AppointmentStatus,
	effects func(ctx context.Context, appt models.Appointment) error,
) (*models.Appointment, error) {
	appt, err := s.ownedAppointment(ctx, trainerID, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != from {
		return nil, fmt.Errorf("%w: appointment is %s; only %s appointments can be %s",
			utils.ErrConflict, appt.Status, from, verbs[to])
	}

	now := s.now()
	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		ok, err := s.Appointments.TransitionStatus(ctx, appt.ID, from, to, now)
		if err != nil {
			return err
		}
		if !ok {
			return errNoLongerEligible
		}
		return effects(ctx, *appt)
	})
	if errors.Is(err, errNoLongerEligible) {
		return nil, fmt.Errorf("%w: appointment is no longer %s", utils.ErrConflict, from)
	}
	if errors.Is(err, database.ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: another appointment is already accepted for %s", utils.ErrConflict, appt.Date)
	}
	if err != nil {
		return nil, utils.FromStore(err, "appointment")
	}

	appt.Status = to
	appt.UpdatedAt = &now
	s.Logger.Info("appointment "+verbs[to],
		zap.String("appointmentID", appt.ID), zap.String("trainerID", trainerID))
	return appt, nil
}

// Accept confirms an awaiting appointment. Every other awaiting request for
// the same slot and date is rejected in the same transaction.
func (s *DefaultBookingService) Accept(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error) {
	return s.resolve(ctx, trainerID, appointmentID, models.StatusAwaiting, models.StatusAccepted,
		func(ctx context.Context, appt models.Appointment) error {
			accepted, err := s.Appointments.ListBySlotDate(ctx, appt.SlotID, appt.Date, models.StatusAccepted)
			if err != nil {
				return err
			}
			for _, other := range accepted {
				if other.ID != appt.ID {
					return fmt.Errorf("%w: another appointment is already accepted for %s", utils.ErrConflict, appt.Date)
				}
			}

			competitors, err := s.Appointments.ListBySlotDate(ctx, appt.SlotID, appt.Date, models.StatusAwaiting)
			if err != nil {
				return err
			}
			at := s.now()
			for _, c := range competitors {
				if c.ID == appt.ID {
					continue
				}
				ok, err := s.Appointments.TransitionStatus(ctx, c.ID, models.StatusAwaiting, models.StatusRejected, at)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if err := notification.Deliver(ctx, s.Notifier, c.UserID, notification.RejectedConflict(c)); err != nil {
					return err
				}
			}
			return notification.Deliver(ctx, s.Notifier, appt.UserID, notification.Accepted(appt))
		})
}

// Reject declines an awaiting appointment.
func (s *DefaultBookingService) Reject(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error) {
	return s.resolve(ctx, trainerID, appointmentID, models.StatusAwaiting, models.StatusRejected,
		func(ctx context.Context, appt models.Appointment) error {
			return notification.Deliver(ctx, s.Notifier, appt.UserID, notification.Rejected(appt))
		})
}

// Cancel withdraws an accepted appointment.
func (s *DefaultBookingService) Cancel(ctx context.Context, trainerID, appointmentID string) (*models.Appointment, error) {
	return s.resolve(ctx, trainerID, appointmentID, models.StatusAccepted, models.StatusCancelled,
		func(ctx context.Context, appt models.Appointment) error {
			return notification.Deliver(ctx, s.Notifier, appt.UserID, notification.Cancelled(appt))
		})
}
