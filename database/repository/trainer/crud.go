// File: database/repository/trainer/crud.go
package trainerRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"powerup/database"
	"powerup/models"
)

func (r *mongoTrainerRepo) Create(ctx context.Context, trainer *models.Trainer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if trainer.ID == "" {
		trainer.ID = uuid.New().String()
	}
	if trainer.ServiceIDs == nil {
		trainer.ServiceIDs = []string{}
	}
	now := time.Now()
	trainer.CreatedAt, trainer.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, trainer)
	return database.Translate("insert trainer", err)
}

func (r *mongoTrainerRepo) Update(ctx context.Context, trainer *models.Trainer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	trainer.UpdatedAt = time.Now()
	set := bson.M{
		"name":           trainer.Name,
		"phoneNumber":    trainer.PhoneNumber,
		"gymId":          trainer.GymID,
		"specialization": trainer.Specialization,
		"updatedAt":      trainer.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if trainer.UserID != "" {
		set["userId"] = trainer.UserID
	} else {
		update["$unset"] = bson.M{"userId": ""}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": trainer.ID}, update)
	if err != nil {
		return database.Translate("update trainer", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}

func (r *mongoTrainerRepo) AddService(ctx context.Context, trainerID, serviceID string) error {
	return r.updateServices(ctx, trainerID, bson.M{"$addToSet": bson.M{"serviceIds": serviceID}})
}

func (r *mongoTrainerRepo) RemoveService(ctx context.Context, trainerID, serviceID string) error {
	return r.updateServices(ctx, trainerID, bson.M{"$pull": bson.M{"serviceIds": serviceID}})
}

func (r *mongoTrainerRepo) updateServices(ctx context.Context, trainerID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["$set"] = bson.M{"updatedAt": time.Now()}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": trainerID}, update)
	if err != nil {
		return database.Translate("update trainer services", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}

func (r *mongoTrainerRepo) RemoveServiceFromAll(ctx context.Context, serviceID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"serviceIds": serviceID},
		bson.M{
			"$pull": bson.M{"serviceIds": serviceID},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return 0, database.Translate("withdraw service from trainers", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoTrainerRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return database.Translate("delete trainer", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}
