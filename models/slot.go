// File: models/slot.go
package models

import "time"

// Slot is a trainer's one-hour availability unit for a weekday.
type Slot struct {
	ID         string    `bson:"id" json:"id"`
	TrainerID  string    `bson:"trainerId" json:"trainerId"`
	GymID      string    `bson:"gymId" json:"gymId"`
	DayOfWeek  int       `bson:"dayOfWeek" json:"dayOfWeek"` // time.Weekday: 0 = Sunday ... 6 = Saturday
	Hour       int       `bson:"hour" json:"hour"`           // 0-23, session runs hour:00 to hour+1:00
	Recurring  bool      `bson:"recurring" json:"recurring"`
	ServiceIDs []string  `bson:"serviceIds" json:"serviceIds"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TimeRange renders the session window as "19:00-20:00".
func (s Slot) TimeRange() string {
	return FormatMinutes(s.Hour*60) + "-" + FormatMinutes((s.Hour+1)*60)
}

// SlotRequest is the payload for creating or editing a slot.
type SlotRequest struct {
	GymID      string   `json:"gymId"`
	DayOfWeek  int      `json:"dayOfWeek"`
	Hour       int      `json:"hour"`
	ServiceIDs []string `json:"serviceIds"`
	Recurring  bool     `json:"recurring"`
}
