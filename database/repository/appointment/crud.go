// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"powerup/database"
	"powerup/models"
)

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, appt)
	return database.Translate("insert appointment", err)
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, database.Translate("fetch appointment "+id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) TransitionStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to, "updatedAt": at}
	if to == models.StatusCompleted {
		set["completedAt"] = at
	}

	// The status predicate makes the write conditional: a concurrent
	// transition leaves nothing to match.
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return false, database.Translate("transition appointment", err)
	}
	return res.MatchedCount == 1, nil
}
