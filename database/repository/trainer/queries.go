// File: database/repository/trainer/queries.go
package trainerRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powerup/database"
	"powerup/models"
)

func (r *mongoTrainerRepo) GetByID(ctx context.Context, id string) (*models.Trainer, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoTrainerRepo) GetByUserID(ctx context.Context, userID string) (*models.Trainer, error) {
	if userID == "" {
		return nil, database.ErrNoDocument
	}
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoTrainerRepo) findOne(ctx context.Context, filter bson.M) (*models.Trainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trainer models.Trainer
	if err := r.coll.FindOne(ctx, filter).Decode(&trainer); err != nil {
		return nil, database.Translate("fetch trainer", err)
	}
	return &trainer, nil
}

func (r *mongoTrainerRepo) List(ctx context.Context, gymID string) ([]models.Trainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if gymID != "" {
		filter["gymId"] = gymID
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, database.Translate("list trainers", err)
	}
	defer cursor.Close(ctx)

	trainers := []models.Trainer{}
	if err := cursor.All(ctx, &trainers); err != nil {
		return nil, database.Translate("decode trainers", err)
	}
	return trainers, nil
}
