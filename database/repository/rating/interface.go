package ratingRepo

import (
	"context"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type RatingRepository interface {
	// Create fails with database.ErrDuplicateKey when the user already rated the appointment.
	Create(ctx context.Context, rating *models.Rating) error
	Exists(ctx context.Context, appointmentID, userID string) (bool, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Rating, error)
	SummaryForTrainer(ctx context.Context, trainerID string) (*models.RatingSummary, error)
}

type mongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo returns a new RatingRepository instance using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	return &mongoRatingRepo{coll: database.DB().Collection("ratings")}
}
