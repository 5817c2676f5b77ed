// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// A trainer holds at most one slot per weekday and hour.
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "dayOfWeek", Value: 1}, {Key: "hour", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("trainer_day_hour_unique"),
		},
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}},
			Options: options.Index().SetName("gym_idx"),
		},
		{
			Keys:    bson.D{{Key: "serviceIds", Value: 1}},
			Options: options.Index().SetName("service_ids_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
