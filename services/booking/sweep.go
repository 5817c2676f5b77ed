// File: services/booking/sweep.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"powerup/models"
	"powerup/services/notification"
	"powerup/utils"

	"go.uber.org/zap"
)

// FinalizeOverdue closes every open appointment whose session has ended by
// now: awaiting ones are rejected as missed, accepted ones are completed and
// the user is invited to rate them. Each appointment is finalized in its own
// transaction; one that changed status concurrently is skipped. Only a
// failure to list candidates is returned as an error.
func (s *DefaultBookingService) FinalizeOverdue(ctx context.Context, now time.Time) (models.SweepResult, error) {
	var result models.SweepResult
	local := now.In(s.Location)
	today := local.Format(models.DateLayout)

	due, err := s.Appointments.ListDue(ctx, today)
	if err != nil {
		return result, fmt.Errorf("failed to list due appointments: %w", err)
	}

	for _, appt := range due {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Scanned++

		end, err := appt.EndsAt(s.Location)
		if err != nil {
			s.Logger.Error("sweep: malformed appointment date",
				zap.String("appointmentID", appt.ID), zap.String("date", appt.Date), zap.Error(err))
			result.Failed++
			continue
		}
		if end.After(local) {
			// Today's session still running or ahead.
			result.Skipped++
			continue
		}

		changed, err := s.finalize(ctx, appt, now)
		switch {
		case err != nil && errors.Is(err, utils.ErrConflict):
			result.Skipped++
		case err != nil:
			s.Logger.Error("sweep: failed to finalize appointment",
				zap.String("appointmentID", appt.ID), zap.Error(err))
			result.Failed++
		case !changed:
			result.Skipped++
		case appt.Status == models.StatusAwaiting:
			result.Rejected++
		default:
			result.Completed++
		}
	}

	s.Logger.Info("sweep finished",
		zap.String("today", today),
		zap.Int("scanned", result.Scanned),
		zap.Int("rejected", result.Rejected),
		zap.Int("completed", result.Completed),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}

// finalize applies the terminal transition for one overdue appointment. It
// reports false when the appointment had already left its listed status.
func (s *DefaultBookingService) finalize(ctx context.Context, appt models.Appointment, now time.Time) (bool, error) {
	var to models.AppointmentStatus
	var msg notification.Message
	switch appt.Status {
	case models.StatusAwaiting:
		to, msg = models.StatusRejected, notification.MissedSchedule(appt)
	case models.StatusAccepted:
		to, msg = models.StatusCompleted, notification.Completed(appt)
	default:
		return false, nil
	}

	var changed bool
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		ok, err := s.Appointments.TransitionStatus(ctx, appt.ID, appt.Status, to, now)
		if err != nil || !ok {
			return err
		}
		changed = true
		return notification.Deliver(ctx, s.Notifier, appt.UserID, msg)
	})
	if err != nil {
		return false, utils.FromStore(err, "appointment")
	}
	return changed, nil
}
