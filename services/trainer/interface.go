package trainer

import (
	"context"
	"fmt"
	"time"

	"powerup/database/repository"
	"powerup/models"
	"powerup/services/notification"

	"go.uber.org/zap"
)

// TrainerService owns trainer profiles and their weekly slots.
type TrainerService interface {
	// Slot registry
	CreateSlot(ctx context.Context, trainerID string, req models.SlotRequest) (*models.Slot, error)
	EditSlot(ctx context.Context, trainerID, slotID string, req models.SlotRequest) (*models.Slot, error)
	DeleteSlot(ctx context.Context, trainerID, slotID string) error
	ListSlots(ctx context.Context, trainerID string) ([]models.Slot, error)

	// Profiles
	CreateTrainer(ctx context.Context, req models.CreateTrainerRequest) (*models.Trainer, error)
	GetTrainer(ctx context.Context, id string) (*models.Trainer, error)
	ListTrainers(ctx context.Context, gymID string) ([]models.Trainer, error)
	ResolveByUser(ctx context.Context, userID string) (*models.Trainer, error)
	UpdateTrainer(ctx context.Context, trainerID string, req models.UpdateTrainerRequest) (*models.Trainer, error)
	DeleteTrainer(ctx context.Context, trainerID string) error

	// Offered services
	MyServices(ctx context.Context, trainerID string) (*models.TrainerServices, error)
	AddService(ctx context.Context, trainerID, serviceID string) error
	RemoveService(ctx context.Context, trainerID, serviceID string) error
}

// DefaultTrainerService is the production implementation.
type DefaultTrainerService struct {
	Trainers     repository.TrainerRepository
	Gyms         repository.GymRepository
	Services     repository.ServiceRepository
	Slots        repository.SlotRepository
	Appointments repository.AppointmentRepository
	Users        repository.UserRepository
	Tx           repository.TxRunner
	Notifier     notification.Sink
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewDefaultTrainerService(repos *repository.Repositories, notifier notification.Sink, logger *zap.Logger) (*DefaultTrainerService, error) {
	if repos == nil || notifier == nil {
		return nil, fmt.Errorf("trainer service initialization error: repositories or notifier is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTrainerService{
		Trainers:     repos.Trainers,
		Gyms:         repos.Gyms,
		Services:     repos.Services,
		Slots:        repos.Slots,
		Appointments: repos.Appointments,
		Users:        repos.Users,
		Tx:           repos.Tx,
		Notifier:     notifier,
		Logger:       logger,
		Now:          time.Now,
	}, nil
}
