// File: database/repository/trainer/interface.go
package trainerRepo

import (
	"context"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TrainerRepository defines methods for trainer data access.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	GetByID(ctx context.Context, id string) (*models.Trainer, error)
	// GetByUserID resolves the trainer record owned by a login account.
	GetByUserID(ctx context.Context, userID string) (*models.Trainer, error)
	// List returns every trainer, or only those of gymID when it is set.
	List(ctx context.Context, gymID string) ([]models.Trainer, error)
	// Update rewrites the profile fields. Offered services change only
	// through AddService and RemoveService.
	Update(ctx context.Context, trainer *models.Trainer) error
	AddService(ctx context.Context, trainerID, serviceID string) error
	RemoveService(ctx context.Context, trainerID, serviceID string) error
	// RemoveServiceFromAll withdraws a catalogue entry from every trainer.
	RemoveServiceFromAll(ctx context.Context, serviceID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type mongoTrainerRepo struct {
	coll *mongo.Collection
}

// NewMongoTrainerRepo constructs a new MongoDB TrainerRepository.
func NewMongoTrainerRepo() TrainerRepository {
	return &mongoTrainerRepo{coll: database.DB().Collection("trainers")}
}
