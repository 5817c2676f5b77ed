// File: database/repository/trainer/indexes.go
package trainerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the trainers collection.
func (r *mongoTrainerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One trainer profile per linked account; unlinked trainers are skipped.
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_id").
				SetPartialFilterExpression(bson.M{"userId": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}},
			Options: options.Index().SetName("gym_idx"),
		},
		{
			Keys:    bson.D{{Key: "serviceIds", Value: 1}},
			Options: options.Index().SetName("service_ids_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create trainer indexes: %w", err)
	}
	return nil
}
