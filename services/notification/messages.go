package notification

import (
	"context"
	"fmt"
	"strings"

	"powerup/models"
)

// Message is a rendered notification ready for a Sink.
type Message struct {
	Subject     string
	Description string
	Action      *models.NotificationAction
}

func when(a models.Appointment) string {
	return fmt.Sprintf("%s at %s", a.Date, models.FormatMinutes(a.TimeOfDay))
}

// BookingRequested goes to the trainer when a user books one of their slots.
func BookingRequested(requester string, a models.Appointment, slot models.Slot, services []models.Service) Message {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	desc := fmt.Sprintf("%s requested a session on %s, %s", requester, a.Date, slot.TimeRange())
	if len(names) > 0 {
		desc += " for " + strings.Join(names, ", ")
	}
	if a.Notes != "" {
		desc += ". Notes: " + a.Notes
	}
	return Message{Subject: "New appointment request", Description: desc + "."}
}

func Accepted(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment accepted",
		Description: fmt.Sprintf("Your appointment on %s has been accepted.", when(a)),
	}
}

func Rejected(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment rejected",
		Description: fmt.Sprintf("Your appointment request for %s has been rejected by the trainer.", when(a)),
	}
}

func RejectedConflict(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment rejected",
		Description: fmt.Sprintf("Your appointment request for %s was rejected because the slot has been booked by another user.", when(a)),
	}
}

func RejectedSlotRemoved(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment rejected",
		Description: fmt.Sprintf("Your appointment request for %s was rejected because the trainer removed this slot.", when(a)),
	}
}

func RejectedTrainerLeft(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment rejected",
		Description: fmt.Sprintf("Your appointment request for %s was rejected because the trainer is no longer available.", when(a)),
	}
}

func MissedSchedule(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment rejected",
		Description: fmt.Sprintf("Your appointment request for %s was rejected due to a missed schedule.", when(a)),
	}
}

func Cancelled(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment cancelled",
		Description: fmt.Sprintf("Your appointment on %s has been cancelled by the trainer.", when(a)),
	}
}

func CancelledTrainerLeft(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment cancelled",
		Description: fmt.Sprintf("Your appointment on %s has been cancelled because the trainer is no longer available.", when(a)),
	}
}

// Completed carries the rating action for the finished session.
func Completed(a models.Appointment) Message {
	return Message{
		Subject:     "Appointment completed",
		Description: fmt.Sprintf("Your session on %s is complete. Tell us how it went!", when(a)),
		Action: &models.NotificationAction{
			Type:    models.ActionRating,
			Payload: a.ID,
			Label:   "Rate appointment",
		},
	}
}

// Deliver sends m through sink.
func Deliver(ctx context.Context, sink Sink, userID string, m Message) error {
	return sink.Send(ctx, userID, m.Subject, m.Description, m.Action)
}
