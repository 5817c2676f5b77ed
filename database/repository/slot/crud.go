// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"powerup/database"
	"powerup/models"
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if slot.ServiceIDs == nil {
		slot.ServiceIDs = []string{}
	}
	now := time.Now()
	slot.CreatedAt, slot.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, slot)
	return database.Translate("insert slot", err)
}

func (r *mongoSlotRepo) Update(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slot.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"gymId":      slot.GymID,
		"dayOfWeek":  slot.DayOfWeek,
		"hour":       slot.Hour,
		"recurring":  slot.Recurring,
		"serviceIds": slot.ServiceIDs,
		"updatedAt":  slot.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": slot.ID, "trainerId": slot.TrainerID}, update)
	if err != nil {
		return database.Translate("update slot", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}

// Lock bumps a counter on the slot document. Two transactions that both lock
// or delete the same slot then collide with a write conflict.
func (r *mongoSlotRepo) Lock(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"lockSeq": 1}})
	if err != nil {
		return database.Translate("lock slot", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}

func (r *mongoSlotRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return database.Translate("delete slot", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}

func (r *mongoSlotRepo) DeleteByTrainer(ctx context.Context, trainerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"trainerId": trainerID})
	if err != nil {
		return 0, database.Translate("delete trainer slots", err)
	}
	return res.DeletedCount, nil
}
