// File: models/gym.go
package models

import (
	"fmt"
	"time"
)

// Gym is a physical location trainers work out of.
type Gym struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Address       string    `bson:"address" json:"address"`
	MonthlyPrice  int       `bson:"monthlyPrice" json:"monthlyPrice"`
	AnnuallyPrice int       `bson:"annuallyPrice" json:"annuallyPrice"`
	OpeningTime   int       `bson:"openingTime" json:"openingTime"` // minutes from midnight (e.g., 480 for 08:00)
	ClosingTime   int       `bson:"closingTime" json:"closingTime"` // minutes from midnight (e.g., 1200 for 20:00)
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FitsHour reports whether a one-hour session starting at hour lies inside opening hours.
func (g Gym) FitsHour(hour int) bool {
	start := hour * 60
	end := start + 60
	return start >= g.OpeningTime && end <= g.ClosingTime
}

// HoursLabel renders the opening window as "08:00-20:00".
func (g Gym) HoursLabel() string {
	return fmt.Sprintf("%s-%s", FormatMinutes(g.OpeningTime), FormatMinutes(g.ClosingTime))
}

// CreateGymRequest is the admin payload for registering a gym.
type CreateGymRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	MonthlyPrice  int    `json:"monthlyPrice"`
	AnnuallyPrice int    `json:"annuallyPrice"`
	OpeningTime   string `json:"openingTime" binding:"required"` // "HH:MM"
	ClosingTime   string `json:"closingTime" binding:"required"` // "HH:MM"
}
