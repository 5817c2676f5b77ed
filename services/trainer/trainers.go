// File: services/trainer/trainers.go
package trainer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"powerup/database"
	"powerup/models"
	"powerup/services/notification"
	"powerup/utils"

	"go.uber.org/zap"
)

func (s *DefaultTrainerService) CreateTrainer(ctx context.Context, req models.CreateTrainerRequest) (*models.Trainer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.PhoneNumber) == "" {
		return nil, fmt.Errorf("%w: name and phone number are required", utils.ErrValidation)
	}
	if _, err := s.Gyms.GetByID(ctx, req.GymID); err != nil {
		if errors.Is(err, database.ErrNoDocument) {
			return nil, fmt.Errorf("%w: gym %s does not exist", utils.ErrValidation, req.GymID)
		}
		return nil, err
	}
	if req.UserID != "" {
		if _, err := s.Trainers.GetByUserID(ctx, req.UserID); err == nil {
			return nil, fmt.Errorf("%w: user %s is already linked to a trainer", utils.ErrConflict, req.UserID)
		}
	}

	serviceIDs := uniqueIDs(req.ServiceIDs)
	if err := s.knownServices(ctx, serviceIDs); err != nil {
		return nil, err
	}

	t := &models.Trainer{
		Name:           req.Name,
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		GymID:          req.GymID,
		Specialization: strings.TrimSpace(req.Specialization),
		UserID:         req.UserID,
		ServiceIDs:     serviceIDs,
	}
	if err := s.Trainers.Create(ctx, t); err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	return t, nil
}

// UpdateTrainer edits the profile fields. The linked account and the offered
// services are not touched.
func (s *DefaultTrainerService) UpdateTrainer(ctx context.Context, trainerID string, req models.UpdateTrainerRequest) (*models.Trainer, error) {
	t, err := s.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.PhoneNumber)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone number are required", utils.ErrValidation)
	}
	if _, err := s.Gyms.GetByID(ctx, req.GymID); err != nil {
		if errors.Is(err, database.ErrNoDocument) {
			return nil, fmt.Errorf("%w: gym %s does not exist", utils.ErrValidation, req.GymID)
		}
		return nil, err
	}

	t.Name = name
	t.PhoneNumber = phone
	t.GymID = req.GymID
	t.Specialization = strings.TrimSpace(req.Specialization)
	if err := s.Trainers.Update(ctx, t); err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	s.Logger.Info("trainer updated", zap.String("trainerID", trainerID), zap.String("gymID", t.GymID))
	return t, nil
}

func (s *DefaultTrainerService) GetTrainer(ctx context.Context, id string) (*models.Trainer, error) {
	t, err := s.Trainers.GetByID(ctx, id)
	return t, utils.FromStore(err, "trainer")
}

func (s *DefaultTrainerService) ListTrainers(ctx context.Context, gymID string) ([]models.Trainer, error) {
	return s.Trainers.List(ctx, gymID)
}

// ResolveByUser finds the trainer profile a login account owns.
func (s *DefaultTrainerService) ResolveByUser(ctx context.Context, userID string) (*models.Trainer, error) {
	t, err := s.Trainers.GetByUserID(ctx, userID)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, fmt.Errorf("%w: account is not linked to a trainer", utils.ErrForbidden)
	}
	return t, err
}

// DeleteTrainer retires a trainer in a fixed order: open appointments are
// finalized and their users notified, then slots, the trainer record and the
// linked account are removed. Appointment rows are kept as history. A failure
// part way leaves a state this method can be rerun on.
func (s *DefaultTrainerService) DeleteTrainer(ctx context.Context, trainerID string) error {
	logger := s.Logger.With(zap.String("trainerID", trainerID))

	t, err := s.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		return utils.FromStore(err, "trainer")
	}

	// 1. Finalize open appointments.
	var rejected, cancelled int
	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		now := s.Now()
		awaiting, err := s.Appointments.ListByTrainer(ctx, trainerID, models.StatusAwaiting)
		if err != nil {
			return err
		}
		for _, a := range awaiting {
			ok, err := s.Appointments.TransitionStatus(ctx, a.ID, models.StatusAwaiting, models.StatusRejected, now)
			if err != nil {
				return err
			}
			if ok {
				rejected++
				if err := notification.Deliver(ctx, s.Notifier, a.UserID, notification.RejectedTrainerLeft(a)); err != nil {
					return err
				}
			}
		}

		accepted, err := s.Appointments.ListByTrainer(ctx, trainerID, models.StatusAccepted)
		if err != nil {
			return err
		}
		for _, a := range accepted {
			ok, err := s.Appointments.TransitionStatus(ctx, a.ID, models.StatusAccepted, models.StatusCancelled, now)
			if err != nil {
				return err
			}
			if ok {
				cancelled++
				if err := notification.Deliver(ctx, s.Notifier, a.UserID, notification.CancelledTrainerLeft(a)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to finalize appointments: %w", err)
	}

	// 2. Remove slots.
	removed, err := s.Slots.DeleteByTrainer(ctx, trainerID)
	if err != nil {
		return fmt.Errorf("failed to remove slots: %w", err)
	}

	// 3. Remove the trainer.
	if err := s.Trainers.Delete(ctx, trainerID); err != nil {
		return fmt.Errorf("failed to remove trainer: %w", err)
	}

	// 4. Remove the linked account.
	if t.UserID != "" {
		if err := s.Users.Delete(ctx, t.UserID); err != nil && !errors.Is(err, database.ErrNoDocument) {
			return fmt.Errorf("failed to remove linked user: %w", err)
		}
	}

	logger.Info("trainer deleted",
		zap.Int("rejected", rejected), zap.Int("cancelled", cancelled), zap.Int64("slots", removed))
	return nil
}
