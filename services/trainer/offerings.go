package trainer

import (
	"context"
	"fmt"

	"powerup/models"
	"powerup/utils"

	"go.uber.org/zap"
)

// MyServices splits the catalogue into the services the trainer offers and
// the ones still available to add.
func (s *DefaultTrainerService) MyServices(ctx context.Context, trainerID string) (*models.TrainerServices, error) {
	t, err := s.Trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, utils.FromStore(err, "trainer")
	}
	catalogue, err := s.Services.List(ctx)
	if err != nil {
		return nil, err
	}

	offered := make(map[string]bool, len(t.ServiceIDs))
	for _, id := range t.ServiceIDs {
		offered[id] = true
	}
	out := &models.TrainerServices{Offered: []models.Service{}, Available: []models.Service{}}
	for _, svc := range catalogue {
		if offered[svc.ID] {
			out.Offered = append(out.Offered, svc)
		} else {
			out.Available = append(out.Available, svc)
		}
	}
	return out, nil
}

// AddService links a catalogue service to the trainer. Adding one already
// offered is a no-op.
func (s *DefaultTrainerService) AddService(ctx context.Context, trainerID, serviceID string) error {
	if _, err := s.Services.GetByID(ctx, serviceID); err != nil {
		return utils.FromStore(err, "service")
	}
	if err := s.Trainers.AddService(ctx, trainerID, serviceID); err != nil {
		return utils.FromStore(err, "trainer")
	}
	s.Logger.Info("service added", zap.String("trainerID", trainerID), zap.String("serviceID", serviceID))
	return nil
}

// RemoveService unlinks a service. It is refused while one of the trainer's
// slots still offers it.
func (s *DefaultTrainerService) RemoveService(ctx context.Context, trainerID, serviceID string) error {
	slots, err := s.ListSlots(ctx, trainerID)
	if err != nil {
		return err
	}
	var inUse int
	for _, slot := range slots {
		for _, id := range slot.ServiceIDs {
			if id == serviceID {
				inUse++
				break
			}
		}
	}
	if inUse > 0 {
		return fmt.Errorf("%w: %d slot(s) still offer this service; edit them first", utils.ErrConflict, inUse)
	}

	if err := s.Trainers.RemoveService(ctx, trainerID, serviceID); err != nil {
		return utils.FromStore(err, "trainer")
	}
	s.Logger.Info("service removed", zap.String("trainerID", trainerID), zap.String("serviceID", serviceID))
	return nil
}
