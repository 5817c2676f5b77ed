// File: database/repository/catalogue/interface.go
package catalogueRepo

import (
	"context"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository stores the catalogue of services slots can offer.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetByIDs returns the services found among ids; missing ids are omitted.
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new MongoDB ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	return &mongoServiceRepo{coll: database.DB().Collection("services")}
}
