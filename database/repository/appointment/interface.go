// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository is the persistence surface of the booking lifecycle.
// Status changes only happen through TransitionStatus.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)

	// TransitionStatus moves id from -> to only if it is still in from. It
	// reports false when another writer got there first. Moving to Completed
	// stamps completedAt with at.
	TransitionStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) (bool, error)

	ListBySlotDate(ctx context.Context, slotID, date string, status models.AppointmentStatus) ([]models.Appointment, error)
	ListBySlot(ctx context.Context, slotID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error)
	// ListByTrainer returns every appointment of the trainer when no status is given.
	ListByTrainer(ctx context.Context, trainerID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error)
	// List returns appointments across all trainers, newest date first.
	List(ctx context.Context, statuses ...models.AppointmentStatus) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	// ListDue returns awaiting and accepted appointments dated on or before date.
	ListDue(ctx context.Context, date string) ([]models.Appointment, error)
	ListBookedByTrainer(ctx context.Context, trainerID, fromDate string) ([]models.BookedSlot, error)
	ListRejectedSince(ctx context.Context, userID string, since time.Time) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{coll: database.DB().Collection("appointments")}
}
