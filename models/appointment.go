// File: models/appointment.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus int

const (
	StatusAwaiting  AppointmentStatus = 0
	StatusAccepted  AppointmentStatus = 1
	StatusRejected  AppointmentStatus = 2
	StatusCompleted AppointmentStatus = 3
	StatusCancelled AppointmentStatus = 4
)

var statusNames = map[AppointmentStatus]string{
	StatusAwaiting:  "awaiting",
	StatusAccepted:  "accepted",
	StatusRejected:  "rejected",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

func (s AppointmentStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether no further transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s != StatusAwaiting && s != StatusAccepted
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusAwaiting:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// ParseStatus accepts either the name ("awaiting") or the numeric code ("0").
func ParseStatus(s string) (AppointmentStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if s == name || s == fmt.Sprintf("%d", int(st)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown appointment status %q", s)
}

// Appointment is one booking of a slot on a calendar date.
type Appointment struct {
	ID          string            `bson:"id" json:"id"`
	TrainerID   string            `bson:"trainerId" json:"trainerId"`
	UserID      string            `bson:"userId" json:"userId"`
	SlotID      string            `bson:"slotId" json:"slotId"`
	Date        string            `bson:"date" json:"date"`           // "YYYY-MM-DD"
	TimeOfDay   int               `bson:"timeOfDay" json:"timeOfDay"` // minutes from midnight, copied from the slot hour
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Status      AppointmentStatus `bson:"status" json:"status"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time        `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	CompletedAt *time.Time        `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// EndsAt is the wall-clock end of the session in loc.
func (a Appointment) EndsAt(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, a.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(a.TimeOfDay+60) * time.Minute), nil
}

// BookingRequest is the input of the booking engine.
type BookingRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	SlotID    string `json:"slotId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Notes     string `json:"notes"`
	UserID    string `json:"-"`
}

// BookedSlot is one (slot, date) pair already taken by an accepted appointment.
type BookedSlot struct {
	SlotID string `json:"slotId"`
	Date   string `json:"date"`
}

// SweepResult summarizes one run of the overdue finalizer.
type SweepResult struct {
	Scanned   int `json:"scanned"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
