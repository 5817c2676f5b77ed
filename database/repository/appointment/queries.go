// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"powerup/database"
	"powerup/models"
)

var chronological = bson.D{{Key: "date", Value: 1}, {Key: "timeOfDay", Value: 1}, {Key: "createdAt", Value: 1}}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, database.Translate("query appointments", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, database.Translate("decode appointments", err)
	}
	return appts, nil
}

func statusFilter(filter bson.M, statuses []models.AppointmentStatus) bson.M {
	switch len(statuses) {
	case 0:
	case 1:
		filter["status"] = statuses[0]
	default:
		filter["status"] = bson.M{"$in": statuses}
	}
	return filter
}

func (r *mongoAppointmentRepo) ListBySlotDate(ctx context.Context, slotID, date string, status models.AppointmentStatus) ([]models.Appointment, error) {
	filter := bson.M{"slotId": slotID, "date": date, "status": status}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *mongoAppointmentRepo) ListBySlot(ctx context.Context, slotID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	filter := statusFilter(bson.M{"slotId": slotID}, statuses)
	return r.find(ctx, filter, options.Find().SetSort(chronological))
}

func (r *mongoAppointmentRepo) ListByTrainer(ctx context.Context, trainerID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	filter := statusFilter(bson.M{"trainerId": trainerID}, statuses)
	return r.find(ctx, filter, options.Find().SetSort(chronological))
}

func (r *mongoAppointmentRepo) List(ctx context.Context, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "timeOfDay", Value: -1}}
	return r.find(ctx, statusFilter(bson.M{}, statuses), options.Find().SetSort(sort))
}

func (r *mongoAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "timeOfDay", Value: -1}}
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(sort))
}

func (r *mongoAppointmentRepo) ListDue(ctx context.Context, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":   bson.M{"$lte": date},
		"status": bson.M{"$in": []models.AppointmentStatus{models.StatusAwaiting, models.StatusAccepted}},
	}
	return r.find(ctx, filter, options.Find().SetSort(chronological))
}

func (r *mongoAppointmentRepo) ListBookedByTrainer(ctx context.Context, trainerID, fromDate string) ([]models.BookedSlot, error) {
	filter := bson.M{
		"trainerId": trainerID,
		"status":    models.StatusAccepted,
		"date":      bson.M{"$gte": fromDate},
	}
	opts := options.Find().
		SetSort(chronological).
		SetProjection(bson.M{"slotId": 1, "date": 1})

	appts, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	booked := make([]models.BookedSlot, 0, len(appts))
	for _, a := range appts {
		booked = append(booked, models.BookedSlot{SlotID: a.SlotID, Date: a.Date})
	}
	return booked, nil
}

func (r *mongoAppointmentRepo) ListRejectedSince(ctx context.Context, userID string, since time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"userId":    userID,
		"status":    models.StatusRejected,
		"updatedAt": bson.M{"$gte": since},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}
