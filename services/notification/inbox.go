package notification

import (
	"context"
	"fmt"
	"strings"

	"powerup/models"
	"powerup/services/tasks"
	"powerup/utils"

	"go.uber.org/zap"
)

// Send persists the notification row. Push scheduling is best effort: a
// queue failure is logged and the stored row still counts as delivered.
func (s *DefaultNotificationService) Send(ctx context.Context, userID, subject, description string, action *models.NotificationAction) error {
	if userID == "" {
		return fmt.Errorf("%w: notification recipient is required", utils.ErrValidation)
	}
	n := &models.Notification{
		UserID:      userID,
		Subject:     subject,
		Description: description,
	}
	if action != nil {
		n.ActionType = action.Type
		n.ActionPayload = action.Payload
		n.ActionLabel = action.Label
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.Queue == nil {
		return nil
	}
	task, opts, err := tasks.NewPushTask(models.PushPayload{NotificationID: n.ID, UserID: userID}, s.PushDelay)
	if err == nil {
		_, err = s.Queue.EnqueueContext(ctx, task, opts...)
	}
	if err != nil {
		s.Logger.Warn("failed to enqueue push delivery",
			zap.String("notificationID", n.ID), zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.CountUnread(ctx, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return utils.FromStore(s.Repo.MarkRead(ctx, id, userID), "notification")
}

func (s *DefaultNotificationService) Delete(ctx context.Context, id, userID string) error {
	return utils.FromStore(s.Repo.Delete(ctx, id, userID), "notification")
}

func (s *DefaultNotificationService) RegisterPushToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: push token is required", utils.ErrValidation)
	}
	return utils.FromStore(s.Users.SetFCMToken(ctx, userID, token), "user")
}
