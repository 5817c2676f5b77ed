// File: services/booking/book.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"powerup/models"
	"powerup/services/notification"
	"powerup/utils"

	"go.uber.org/zap"
)

const maxNotesLength = 500

// Book files an awaiting appointment against a slot for one calendar date.
// Competing awaiting requests are allowed; the trainer settles them on accept.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	req.Notes = strings.TrimSpace(req.Notes)
	if utf8.RuneCountInString(req.Notes) > maxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", utils.ErrValidation, maxNotesLength)
	}

	trainer, err := s.Trainers.GetByID(ctx, req.TrainerID)
	if err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	slot, err := s.Slots.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, utils.FromStore(err, "slot")
	}
	if slot.TrainerID != trainer.ID {
		return nil, fmt.Errorf("%w: slot %s is not offered by trainer %s", utils.ErrNotFound, slot.ID, trainer.ID)
	}
	if trainer.UserID != "" && trainer.UserID == req.UserID {
		return nil, fmt.Errorf("%w: trainers cannot book their own slots", utils.ErrValidation)
	}

	if err := s.checkDate(req.Date, slot); err != nil {
		return nil, err
	}

	requester := req.UserID
	if u, err := s.Users.GetByID(ctx, req.UserID); err == nil {
		requester = u.DisplayName()
	}
	services, err := s.Services.GetByIDs(ctx, slot.ServiceIDs)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		TrainerID: trainer.ID,
		UserID:    req.UserID,
		SlotID:    slot.ID,
		Date:      req.Date,
		TimeOfDay: slot.Hour * 60,
		Notes:     req.Notes,
		Status:    models.StatusAwaiting,
		CreatedAt: s.now(),
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		// A slot deleted after the read above must not gain an appointment.
		if err := s.Slots.Lock(ctx, slot.ID); err != nil {
			return utils.FromStore(err, "slot")
		}
		accepted, err := s.Appointments.ListBySlotDate(ctx, slot.ID, req.Date, models.StatusAccepted)
		if err != nil {
			return err
		}
		if len(accepted) > 0 {
			return fmt.Errorf("%w: this slot is already booked on %s", utils.ErrConflict, req.Date)
		}
		pending, err := s.Appointments.ListBySlotDate(ctx, slot.ID, req.Date, models.StatusAwaiting)
		if err != nil {
			return err
		}
		for _, p := range pending {
			if p.UserID == req.UserID {
				return fmt.Errorf("%w: you already have a pending request for this slot on %s", utils.ErrConflict, req.Date)
			}
		}

		if err := s.Appointments.Create(ctx, appt); err != nil {
			return err
		}

		if trainer.UserID == "" {
			s.Logger.Warn("trainer has no linked account; booking request not notified",
				zap.String("trainerID", trainer.ID), zap.String("appointmentID", appt.ID))
			return nil
		}
		msg := notification.BookingRequested(requester, *appt, *slot, services)
		return notification.Deliver(ctx, s.Notifier, trainer.UserID, msg)
	})
	if err != nil {
		return nil, utils.FromStore(err, "appointment")
	}

	s.Logger.Info("appointment requested",
		zap.String("appointmentID", appt.ID), zap.String("trainerID", trainer.ID),
		zap.String("slotID", slot.ID), zap.String("date", appt.Date))
	return appt, nil
}

// checkDate validates a requested calendar date against the slot's weekday
// and the current time.
func (s *DefaultBookingService) checkDate(date string, slot *models.Slot) error {
	day, err := models.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%w: date must be formatted YYYY-MM-DD", utils.ErrValidation)
	}
	if int(day.Weekday()) != slot.DayOfWeek {
		return fmt.Errorf("%w: %s is a %s but the slot is on %s", utils.ErrValidation,
			date, day.Weekday(), time.Weekday(slot.DayOfWeek))
	}

	now := s.now()
	today := now.Format(models.DateLayout)
	if date < today {
		return fmt.Errorf("%w: date %s is in the past", utils.ErrValidation, date)
	}
	if date == today && slot.Hour*60 <= now.Hour()*60+now.Minute() {
		return fmt.Errorf("%w: the %s session has already started", utils.ErrValidation, slot.TimeRange())
	}
	return nil
}

var errNoLongerEligible = errors.New("no longer eligible")

// ownedAppointment loads an appointment and checks it belongs to trainerID.
func (s *DefaultBookingService) ownedAppointment(ctx context.Context, trainerID, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromStore(err, "appointment")
	}
	if appt.TrainerID != trainerID {
		return nil, fmt.Errorf("%w: appointment %s belongs to another trainer", utils.ErrForbidden, id)
	}
	return appt, nil
}
