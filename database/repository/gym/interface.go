// File: database/repository/gym/interface.go
package gymRepo

import (
	"context"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type GymRepository interface {
	Create(ctx context.Context, gym *models.Gym) error
	GetByID(ctx context.Context, id string) (*models.Gym, error)
	List(ctx context.Context) ([]models.Gym, error)
	Update(ctx context.Context, gym *models.Gym) error
	Delete(ctx context.Context, id string) error
}

type mongoGymRepo struct {
	coll *mongo.Collection
}

// NewMongoGymRepo constructs a new MongoDB GymRepository.
func NewMongoGymRepo() GymRepository {
	return &mongoGymRepo{coll: database.DB().Collection("gyms")}
}
