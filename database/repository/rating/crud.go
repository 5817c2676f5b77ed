package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powerup/database"
	"powerup/models"
)

// Create inserts a new rating.
func (r *mongoRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	rating.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, rating)
	return database.Translate("insert rating", err)
}

// Exists reports whether userID already rated appointmentID.
func (r *mongoRatingRepo) Exists(ctx context.Context, appointmentID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"appointmentId": appointmentID, "userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, database.Translate("count ratings", err)
	}
	return n > 0, nil
}

// ListByTrainer fetches all ratings of a trainer, newest first.
func (r *mongoRatingRepo) ListByTrainer(ctx context.Context, trainerID string) ([]models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"trainerId": trainerID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, database.Translate("list ratings", err)
	}
	defer cursor.Close(ctx)

	ratings := []models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, database.Translate("decode ratings", err)
	}
	return ratings, nil
}

// SummaryForTrainer averages the trainer's ratings server side.
func (r *mongoRatingRepo) SummaryForTrainer(ctx context.Context, trainerID string) (*models.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"trainerId": trainerID}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$trainerId"},
			{Key: "count", Value: bson.M{"$sum": 1}},
			{Key: "avgTrainerRating", Value: bson.M{"$avg": "$trainerRating"}},
			{Key: "avgGymRating", Value: bson.M{"$avg": "$gymRating"}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, database.Translate("aggregate ratings", err)
	}
	defer cursor.Close(ctx)

	var out []models.RatingSummary
	if err := cursor.All(ctx, &out); err != nil {
		return nil, database.Translate("decode rating summary", err)
	}
	if len(out) == 0 {
		return &models.RatingSummary{TrainerID: trainerID}, nil
	}
	return &out[0], nil
}

// EnsureIndexes creates the necessary indexes on the ratings collection.
func (r *mongoRatingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "appointmentId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("appointment_user_unique"),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index().SetName("trainer_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create rating indexes: %w", err)
	}
	return nil
}
