package models

import "time"

// Service is a catalogue entry a slot can offer (e.g., "Pilates").
type Service struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type CreateServiceRequest struct {
	Name string `json:"name" binding:"required"`
}
