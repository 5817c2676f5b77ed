package models

import "time"

// Rating is a user's score for a completed appointment.
type Rating struct {
	ID            string    `bson:"id" json:"id"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	TrainerID     string    `bson:"trainerId" json:"trainerId"`
	GymID         string    `bson:"gymId" json:"gymId"`
	UserID        string    `bson:"userId" json:"userId"`
	TrainerRating int       `bson:"trainerRating" json:"trainerRating"` // 1-5
	GymRating     int       `bson:"gymRating" json:"gymRating"`         // 1-5
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

type RatingRequest struct {
	TrainerRating int `json:"trainerRating"`
	GymRating     int `json:"gymRating"`
}

// RatingSummary aggregates ratings of one trainer.
type RatingSummary struct {
	TrainerID        string  `bson:"_id" json:"trainerId"`
	Count            int     `bson:"count" json:"count"`
	AvgTrainerRating float64 `bson:"avgTrainerRating" json:"avgTrainerRating"`
	AvgGymRating     float64 `bson:"avgGymRating" json:"avgGymRating"`
}
