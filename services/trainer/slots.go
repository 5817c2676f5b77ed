// File: services/trainer/slots.go
package trainer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"powerup/database"
	"powerup/models"
	"powerup/services/notification"
	"powerup/utils"

	"go.uber.org/zap"
)

// validateSlot checks the request against the catalogue and the gym's hours
// and returns it normalized.
func (s *DefaultTrainerService) validateSlot(ctx context.Context, t *models.Trainer, req models.SlotRequest) (models.SlotRequest, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return req, fmt.Errorf("%w: dayOfWeek must be between 0 (Sunday) and 6 (Saturday)", utils.ErrValidation)
	}
	if req.Hour < 0 || req.Hour > 23 {
		return req, fmt.Errorf("%w: hour must be between 0 and 23", utils.ErrValidation)
	}

	ids := uniqueIDs(req.ServiceIDs)
	if len(ids) == 0 {
		return req, fmt.Errorf("%w: at least one service is required", utils.ErrValidation)
	}
	if err := s.knownServices(ctx, ids); err != nil {
		return req, err
	}
	if missing := notIn(ids, t.ServiceIDs); len(missing) > 0 {
		return req, fmt.Errorf("%w: trainer does not offer services: %s", utils.ErrValidation, strings.Join(missing, ", "))
	}
	req.ServiceIDs = ids

	if req.GymID == "" {
		req.GymID = t.GymID
	}
	gym, err := s.Gyms.GetByID(ctx, req.GymID)
	if err != nil {
		return req, utils.FromStore(err, "gym")
	}
	if !gym.FitsHour(req.Hour) {
		return req, fmt.Errorf("%w: requested hour falls outside gym operating hours %s",
			utils.ErrValidation, gym.HoursLabel())
	}
	return req, nil
}

// knownServices fails with ErrValidation naming any id missing from the catalogue.
func (s *DefaultTrainerService) knownServices(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.Services.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make([]string, 0, len(found))
	for _, svc := range found {
		known = append(known, svc.ID)
	}
	if missing := notIn(ids, known); len(missing) > 0 {
		return fmt.Errorf("%w: unknown services: %s", utils.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// notIn returns the ids absent from set, in order.
func notIn(ids, set []string) []string {
	have := make(map[string]bool, len(set))
	for _, id := range set {
		have[id] = true
	}
	var missing []string
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func slotTaken(day, hour int) error {
	return fmt.Errorf("%w: a slot already exists on %s at %s", utils.ErrConflict,
		time.Weekday(day), models.FormatMinutes(hour*60))
}

// CreateSlot publishes a new weekly availability slot for the trainer.
func (s *DefaultTrainerService) CreateSlot(ctx context.Context, trainerID string, req models.SlotRequest) (*models.Slot, error) {
	t, err := s.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	req, err = s.validateSlot(ctx, t, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.Slots.FindByKey(ctx, trainerID, req.DayOfWeek, req.Hour); err == nil {
		return nil, slotTaken(req.DayOfWeek, req.Hour)
	} else if !errors.Is(err, database.ErrNoDocument) {
		return nil, err
	}

	slot := &models.Slot{
		TrainerID:  trainerID,
		GymID:      req.GymID,
		DayOfWeek:  req.DayOfWeek,
		Hour:       req.Hour,
		Recurring:  req.Recurring,
		ServiceIDs: req.ServiceIDs,
	}
	if err := s.Slots.Create(ctx, slot); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, slotTaken(req.DayOfWeek, req.Hour)
		}
		return nil, err
	}
	s.Logger.Info("slot created", zap.String("trainerID", trainerID), zap.String("slotID", slot.ID),
		zap.Int("dayOfWeek", slot.DayOfWeek), zap.Int("hour", slot.Hour))
	return slot, nil
}

// ownedSlot loads a slot and checks it belongs to trainerID.
func (s *DefaultTrainerService) ownedSlot(ctx context.Context, trainerID, slotID string) (*models.Slot, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, utils.FromStore(err, "slot")
	}
	if slot.TrainerID != trainerID {
		return nil, fmt.Errorf("%w: slot %s belongs to another trainer", utils.ErrForbidden, slotID)
	}
	return slot, nil
}

// EditSlot revalidates and rewrites a slot. The service links are replaced
// wholesale in the same write. Existing appointments keep the time they were
// booked for.
func (s *DefaultTrainerService) EditSlot(ctx context.Context, trainerID, slotID string, req models.SlotRequest) (*models.Slot, error) {
	slot, err := s.ownedSlot(ctx, trainerID, slotID)
	if err != nil {
		return nil, err
	}
	t, err := s.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	req, err = s.validateSlot(ctx, t, req)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != slot.DayOfWeek || req.Hour != slot.Hour {
		other, err := s.Slots.FindByKey(ctx, trainerID, req.DayOfWeek, req.Hour)
		if err == nil && other.ID != slot.ID {
			return nil, slotTaken(req.DayOfWeek, req.Hour)
		}
		if err != nil && !errors.Is(err, database.ErrNoDocument) {
			return nil, err
		}
	}

	slot.GymID = req.GymID
	slot.DayOfWeek = req.DayOfWeek
	slot.Hour = req.Hour
	slot.Recurring = req.Recurring
	slot.ServiceIDs = req.ServiceIDs
	if err := s.Slots.Update(ctx, slot); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, slotTaken(req.DayOfWeek, req.Hour)
		}
		return nil, utils.FromStore(err, "slot")
	}
	return slot, nil
}

// DeleteSlot removes a slot. Accepted appointments block the deletion;
// awaiting ones are rejected and their requesters notified.
func (s *DefaultTrainerService) DeleteSlot(ctx context.Context, trainerID, slotID string) error {
	if _, err := s.ownedSlot(ctx, trainerID, slotID); err != nil {
		return err
	}

	var notified int
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		accepted, err := s.Appointments.ListBySlot(ctx, slotID, models.StatusAccepted)
		if err != nil {
			return err
		}
		if len(accepted) > 0 {
			return fmt.Errorf("%w: slot has %d accepted appointment(s); cancel or complete them before deleting it",
				utils.ErrConflict, len(accepted))
		}

		awaiting, err := s.Appointments.ListBySlot(ctx, slotID, models.StatusAwaiting)
		if err != nil {
			return err
		}
		now := s.Now()
		for _, a := range awaiting {
			ok, err := s.Appointments.TransitionStatus(ctx, a.ID, models.StatusAwaiting, models.StatusRejected, now)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := notification.Deliver(ctx, s.Notifier, a.UserID, notification.RejectedSlotRemoved(a)); err != nil {
				return err
			}
			notified++
		}
		return utils.FromStore(s.Slots.Delete(ctx, slotID), "slot")
	})
	if err != nil {
		return err
	}
	s.Logger.Info("slot deleted", zap.String("trainerID", trainerID), zap.String("slotID", slotID),
		zap.Int("rejected", notified))
	return nil
}

// ListSlots returns the trainer's slots ordered by day, then hour.
func (s *DefaultTrainerService) ListSlots(ctx context.Context, trainerID string) ([]models.Slot, error) {
	if _, err := s.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	return s.Slots.ListByTrainer(ctx, trainerID)
}
