package admin

import (
	"context"
	"fmt"
	"strings"

	"powerup/models"
	"powerup/utils"

	"go.uber.org/zap"
)

// gymFields validates a gym payload; opening and closing times arrive as "HH:MM".
func gymFields(req models.CreateGymRequest) (models.Gym, error) {
	open, err := models.ParseClock(req.OpeningTime)
	if err != nil {
		return models.Gym{}, fmt.Errorf("%w: openingTime: %v", utils.ErrValidation, err)
	}
	closing, err := models.ParseClock(req.ClosingTime)
	if err != nil {
		return models.Gym{}, fmt.Errorf("%w: closingTime: %v", utils.ErrValidation, err)
	}
	if closing-open < 60 {
		return models.Gym{}, fmt.Errorf("%w: the gym must be open for at least one hour", utils.ErrValidation)
	}
	if req.MonthlyPrice < 0 || req.AnnuallyPrice < 0 {
		return models.Gym{}, fmt.Errorf("%w: prices cannot be negative", utils.ErrValidation)
	}

	gym := models.Gym{
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		MonthlyPrice:  req.MonthlyPrice,
		AnnuallyPrice: req.AnnuallyPrice,
		OpeningTime:   open,
		ClosingTime:   closing,
	}
	if gym.Name == "" {
		return models.Gym{}, fmt.Errorf("%w: name is required", utils.ErrValidation)
	}
	return gym, nil
}

func (s *DefaultAdminService) CreateGym(ctx context.Context, req models.CreateGymRequest) (*models.Gym, error) {
	gym, err := gymFields(req)
	if err != nil {
		return nil, err
	}
	if err := s.Gyms.Create(ctx, &gym); err != nil {
		return nil, utils.FromStore(err, "gym")
	}
	s.Logger.Info("gym created", zap.String("gymID", gym.ID), zap.String("hours", gym.HoursLabel()))
	return &gym, nil
}

// UpdateGym rewrites a gym. New opening hours must still cover every slot
// held at the gym.
func (s *DefaultAdminService) UpdateGym(ctx context.Context, id string, req models.CreateGymRequest) (*models.Gym, error) {
	if _, err := s.Gyms.GetByID(ctx, id); err != nil {
		return nil, utils.FromStore(err, "gym")
	}
	gym, err := gymFields(req)
	if err != nil {
		return nil, err
	}
	gym.ID = id

	slots, err := s.Slots.ListByGym(ctx, id)
	if err != nil {
		return nil, err
	}
	var outside int
	for _, slot := range slots {
		if !gym.FitsHour(slot.Hour) {
			outside++
		}
	}
	if outside > 0 {
		return nil, fmt.Errorf("%w: %d slot(s) fall outside the new operating hours %s",
			utils.ErrConflict, outside, gym.HoursLabel())
	}

	if err := s.Gyms.Update(ctx, &gym); err != nil {
		return nil, utils.FromStore(err, "gym")
	}
	s.Logger.Info("gym updated", zap.String("gymID", id), zap.String("hours", gym.HoursLabel()))
	return &gym, nil
}

// DeleteGym removes a gym nobody works out of any more.
func (s *DefaultAdminService) DeleteGym(ctx context.Context, id string) error {
	if _, err := s.Gyms.GetByID(ctx, id); err != nil {
		return utils.FromStore(err, "gym")
	}
	trainers, err := s.Trainers.List(ctx, id)
	if err != nil {
		return err
	}
	if len(trainers) > 0 {
		return fmt.Errorf("%w: %d trainer(s) still belong to this gym", utils.ErrConflict, len(trainers))
	}
	slots, err := s.Slots.ListByGym(ctx, id)
	if err != nil {
		return err
	}
	if len(slots) > 0 {
		return fmt.Errorf("%w: %d slot(s) are still held at this gym", utils.ErrConflict, len(slots))
	}

	if err := s.Gyms.Delete(ctx, id); err != nil {
		return utils.FromStore(err, "gym")
	}
	s.Logger.Info("gym deleted", zap.String("gymID", id))
	return nil
}

func (s *DefaultAdminService) ListGyms(ctx context.Context) ([]models.Gym, error) {
	return s.Gyms.List(ctx)
}

func (s *DefaultAdminService) CreateService(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", utils.ErrValidation)
	}
	svc := &models.Service{Name: name}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, utils.FromStore(err, "service")
	}
	return svc, nil
}

func (s *DefaultAdminService) UpdateService(ctx context.Context, id string, req models.CreateServiceRequest) (*models.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", utils.ErrValidation)
	}
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromStore(err, "service")
	}
	svc.Name = name
	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, utils.FromStore(err, "service")
	}
	return svc, nil
}

// DeleteService drops a catalogue entry no slot offers. Trainers that list
// it among their services lose it.
func (s *DefaultAdminService) DeleteService(ctx context.Context, id string) error {
	if _, err := s.Services.GetByID(ctx, id); err != nil {
		return utils.FromStore(err, "service")
	}
	inUse, err := s.Slots.CountByService(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w: %d slot(s) still offer this service", utils.ErrConflict, inUse)
	}

	withdrawn, err := s.Trainers.RemoveServiceFromAll(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Services.Delete(ctx, id); err != nil {
		return utils.FromStore(err, "service")
	}
	s.Logger.Info("service deleted", zap.String("serviceID", id), zap.Int64("trainers", withdrawn))
	return nil
}

func (s *DefaultAdminService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Services.List(ctx)
}

// AllAppointments lists every trainer's appointments, newest date first.
func (s *DefaultAdminService) AllAppointments(ctx context.Context, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	return s.Appointments.List(ctx, statuses...)
}
