// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SlotRepository interface {
	// Create inserts a slot; a second slot on the same (trainer, day, hour) yields database.ErrDuplicateKey.
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	FindByKey(ctx context.Context, trainerID string, dayOfWeek, hour int) (*models.Slot, error)
	// ListByTrainer is ordered by day of week, then hour.
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Slot, error)
	// Update rewrites the slot fields and its service links in one write.
	Update(ctx context.Context, slot *models.Slot) error
	// Lock writes to the slot inside the caller's transaction so that a
	// concurrent transaction deleting it cannot commit alongside.
	Lock(ctx context.Context, id string) error
	ListByGym(ctx context.Context, gymID string) ([]models.Slot, error)
	CountByService(ctx context.Context, serviceID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByTrainer(ctx context.Context, trainerID string) (int64, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{coll: database.DB().Collection("slots")}
}
