package admin

import (
	"context"

	"powerup/database/repository"
	"powerup/models"

	"go.uber.org/zap"
)

// AdminService manages gyms, the service catalogue and the cross-trainer
// appointment view.
type AdminService interface {
	CreateGym(ctx context.Context, req models.CreateGymRequest) (*models.Gym, error)
	UpdateGym(ctx context.Context, id string, req models.CreateGymRequest) (*models.Gym, error)
	DeleteGym(ctx context.Context, id string) error
	ListGyms(ctx context.Context) ([]models.Gym, error)

	CreateService(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error)
	UpdateService(ctx context.Context, id string, req models.CreateServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
	ListServices(ctx context.Context) ([]models.Service, error)

	AllAppointments(ctx context.Context, statuses ...models.AppointmentStatus) ([]models.Appointment, error)
}

type DefaultAdminService struct {
	Gyms         repository.GymRepository
	Services     repository.ServiceRepository
	Trainers     repository.TrainerRepository
	Slots        repository.SlotRepository
	Appointments repository.AppointmentRepository
	Logger       *zap.Logger
}

func NewDefaultAdminService(repos *repository.Repositories, logger *zap.Logger) *DefaultAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAdminService{
		Gyms:         repos.Gyms,
		Services:     repos.Services,
		Trainers:     repos.Trainers,
		Slots:        repos.Slots,
		Appointments: repos.Appointments,
		Logger:       logger,
	}
}
