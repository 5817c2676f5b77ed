// File: models/trainer.go
package models

import "time"

// Trainer is a service provider attached to a gym.
type Trainer struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	PhoneNumber    string    `bson:"phoneNumber" json:"phoneNumber"`
	GymID          string    `bson:"gymId" json:"gymId"`
	Specialization string    `bson:"specialization" json:"specialization"`
	UserID         string    `bson:"userId,omitempty" json:"userId,omitempty"` // linked login account, if any
	ServiceIDs     []string  `bson:"serviceIds" json:"serviceIds"`             // services the trainer offers
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateTrainerRequest is the admin payload for registering a trainer.
type CreateTrainerRequest struct {
	Name           string   `json:"name" binding:"required"`
	PhoneNumber    string   `json:"phoneNumber" binding:"required"`
	GymID          string   `json:"gymId" binding:"required"`
	Specialization string   `json:"specialization"`
	UserID         string   `json:"userId"`
	ServiceIDs     []string `json:"serviceIds"`
}

// UpdateTrainerRequest is the admin payload for editing a trainer profile.
type UpdateTrainerRequest struct {
	Name           string `json:"name" binding:"required"`
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	GymID          string `json:"gymId" binding:"required"`
	Specialization string `json:"specialization"`
}

// TrainerServices splits the catalogue into what a trainer offers and what
// they could add.
type TrainerServices struct {
	Offered   []Service `json:"offered"`
	Available []Service `json:"available"`
}
