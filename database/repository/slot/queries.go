// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powerup/database"
	"powerup/models"
)

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		return nil, database.Translate("fetch slot "+id, err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) FindByKey(ctx context.Context, trainerID string, dayOfWeek, hour int) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"trainerId": trainerID, "dayOfWeek": dayOfWeek, "hour": hour}
	var slot models.Slot
	if err := r.coll.FindOne(ctx, filter).Decode(&slot); err != nil {
		return nil, database.Translate("fetch slot by key", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) ListByTrainer(ctx context.Context, trainerID string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "hour", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"trainerId": trainerID}, opts)
	if err != nil {
		return nil, database.Translate("list slots", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, database.Translate("decode slots", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) ListByGym(ctx context.Context, gymID string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"gymId": gymID})
	if err != nil {
		return nil, database.Translate("list gym slots", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, database.Translate("decode slots", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) CountByService(ctx context.Context, serviceID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"serviceIds": serviceID})
	return n, database.Translate("count slots by service", err)
}
