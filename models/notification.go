package models

import "time"

const ActionRating = "rating"

type Notification struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Subject       string    `bson:"subject" json:"subject"`
	Description   string    `bson:"description" json:"description"`
	Read          bool      `bson:"read" json:"read"`
	ActionType    string    `bson:"actionType,omitempty" json:"actionType,omitempty"`
	ActionPayload string    `bson:"actionPayload,omitempty" json:"actionPayload,omitempty"`
	ActionLabel   string    `bson:"actionLabel,omitempty" json:"actionLabel,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// NotificationAction is the optional follow-up attached to a notification.
type NotificationAction struct {
	Type    string
	Payload string
	Label   string
}

// PushPayload is the queue payload for FCM delivery of a stored notification.
type PushPayload struct {
	NotificationID string `json:"notificationId"`
	UserID         string `json:"userId"`
}
