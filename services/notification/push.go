package notification

import (
	"context"
	"errors"
	"fmt"

	"powerup/database"
	"powerup/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DeliverPush sends a stored notification to the recipient's device. Rows
// deleted since enqueueing and users without a registered token are skipped.
func (s *DefaultNotificationService) DeliverPush(ctx context.Context, payload models.PushPayload) error {
	if s.Push == nil {
		return errors.New("push delivery is not configured")
	}

	n, err := s.Repo.GetByID(ctx, payload.NotificationID)
	if errors.Is(err, database.ErrNoDocument) {
		s.Logger.Debug("push skipped: notification gone", zap.String("notificationID", payload.NotificationID))
		return nil
	}
	if err != nil {
		return err
	}

	u, err := s.Users.GetByID(ctx, n.UserID)
	if errors.Is(err, database.ErrNoDocument) || (err == nil && u.FCMToken == "") {
		s.Logger.Debug("push skipped: no device token", zap.String("userID", n.UserID))
		return nil
	}
	if err != nil {
		return err
	}

	data := map[string]string{"notificationId": n.ID}
	if n.ActionType != "" {
		data["actionType"] = n.ActionType
		data["actionPayload"] = n.ActionPayload
		data["actionLabel"] = n.ActionLabel
	}
	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Subject,
			Body:  n.Description,
		},
		Data: data,
	}

	response, err := s.Push.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	s.Logger.Info("push delivered", zap.String("notificationID", n.ID), zap.String("response", response))
	return nil
}
