// File: database/repository/gym/crud.go
package gymRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powerup/database"
	"powerup/models"
)

func (r *mongoGymRepo) Create(ctx context.Context, gym *models.Gym) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if gym.ID == "" {
		gym.ID = uuid.New().String()
	}
	now := time.Now()
	gym.CreatedAt, gym.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, gym)
	return database.Translate("insert gym", err)
}

func (r *mongoGymRepo) GetByID(ctx context.Context, id string) (*models.Gym, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var gym models.Gym
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&gym); err != nil {
		return nil, database.Translate("fetch gym "+id, err)
	}
	return &gym, nil
}

func (r *mongoGymRepo) List(ctx context.Context) ([]models.Gym, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, database.Translate("list gyms", err)
	}
	defer cursor.Close(ctx)

	gyms := []models.Gym{}
	if err := cursor.All(ctx, &gyms); err != nil {
		return nil, database.Translate("decode gyms", err)
	}
	return gyms, nil
}

func (r *mongoGymRepo) Update(ctx context.Context, gym *models.Gym) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	gym.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":          gym.Name,
		"address":       gym.Address,
		"monthlyPrice":  gym.MonthlyPrice,
		"annuallyPrice": gym.AnnuallyPrice,
		"openingTime":   gym.OpeningTime,
		"closingTime":   gym.ClosingTime,
		"updatedAt":     gym.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": gym.ID}, update)
	if err != nil {
		return database.Translate("update gym", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}

func (r *mongoGymRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return database.Translate("delete gym", err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNoDocument
	}
	return nil
}
